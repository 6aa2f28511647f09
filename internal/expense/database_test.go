package expense

import (
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("BoltDB", func() {
	var (
		tmpDir string
		dbPath string
		db     *BoltDB
	)

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
		dbPath = filepath.Join(tmpDir, "test.db")
		var err error
		db, err = NewBoltDB(dbPath)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	Describe("SaveTransaction", func() {
		var (
			transaction *Transaction
			err         error
		)

		BeforeEach(func() {
			transaction = &Transaction{
				ID:          "test-id",
				Description: "Almuerzo McDonald's",
				Date:        time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
				Amount:      -7.75,
				Category:    "Comida",
				CreatedAt:   time.Now(),
				UpdatedAt:   time.Now(),
			}
		})

		JustBeforeEach(func() {
			err = db.SaveTransaction(transaction)
		})

		When("saving succeeds", func() {
			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("should save the transaction to the database", func() {
				saved, getErr := db.GetTransaction("test-id")
				Expect(getErr).NotTo(HaveOccurred())
				Expect(saved.ID).To(Equal("test-id"))
				Expect(saved.Amount).To(Equal(-7.75))
			})
		})

		When("saving twice with the same ID", func() {
			It("should overwrite the stored transaction", func() {
				transaction.Description = "Cena"
				Expect(db.SaveTransaction(transaction)).To(Succeed())
				saved, getErr := db.GetTransaction("test-id")
				Expect(getErr).NotTo(HaveOccurred())
				Expect(saved.Description).To(Equal("Cena"))
			})
		})
	})

	Describe("GetTransaction", func() {
		When("the transaction does not exist", func() {
			It("should return ErrNotFound", func() {
				_, err := db.GetTransaction("nonexistent")
				Expect(err).To(MatchError(ErrNotFound))
			})
		})
	})

	Describe("ListTransactions", func() {
		When("the database is empty", func() {
			It("should return an empty slice", func() {
				transactions, err := db.ListTransactions()
				Expect(err).NotTo(HaveOccurred())
				Expect(transactions).To(BeEmpty())
			})
		})

		When("transactions exist", func() {
			BeforeEach(func() {
				Expect(db.SaveTransaction(&Transaction{ID: "id1", Description: "a", Amount: -1})).To(Succeed())
				Expect(db.SaveTransaction(&Transaction{ID: "id2", Description: "b", Amount: -2})).To(Succeed())
			})

			It("should return all transactions", func() {
				transactions, err := db.ListTransactions()
				Expect(err).NotTo(HaveOccurred())
				Expect(transactions).To(HaveLen(2))
			})
		})
	})

	Describe("DeleteTransaction", func() {
		When("the transaction exists", func() {
			BeforeEach(func() {
				Expect(db.SaveTransaction(&Transaction{ID: "test-id", Description: "a", Amount: -1})).To(Succeed())
			})

			It("should remove it", func() {
				Expect(db.DeleteTransaction("test-id")).To(Succeed())
				_, err := db.GetTransaction("test-id")
				Expect(err).To(MatchError(ErrNotFound))
			})
		})

		When("the transaction does not exist", func() {
			It("should return ErrNotFound", func() {
				Expect(db.DeleteTransaction("nonexistent")).To(MatchError(ErrNotFound))
			})
		})
	})

	Describe("Notifications", func() {
		It("saves and lists notifications", func() {
			notification := &Notification{
				ID:      "n1",
				Title:   "Budget warning",
				Message: "You have used 90% of your monthly budget.",
				Type:    "budget",
				Date:    time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
			}
			Expect(db.SaveNotification(notification)).To(Succeed())

			notifications, err := db.ListNotifications()
			Expect(err).NotTo(HaveOccurred())
			Expect(notifications).To(HaveLen(1))
			Expect(notifications[0].Title).To(Equal("Budget warning"))
		})

		It("persists the read flag on resave", func() {
			notification := &Notification{ID: "n1", Title: "Budget warning"}
			Expect(db.SaveNotification(notification)).To(Succeed())

			notification.IsRead = true
			Expect(db.SaveNotification(notification)).To(Succeed())

			notifications, err := db.ListNotifications()
			Expect(err).NotTo(HaveOccurred())
			Expect(notifications[0].IsRead).To(BeTrue())
		})
	})

	Describe("Settings", func() {
		When("no settings are stored", func() {
			It("should return ErrNotFound", func() {
				_, err := db.GetSettings()
				Expect(err).To(MatchError(ErrNotFound))
			})
		})

		When("settings are stored", func() {
			It("should round-trip them", func() {
				Expect(db.SaveSettings(&Settings{Budget: 1500, SavingsGoal: 6000, TotalSaved: 3000})).To(Succeed())
				settings, err := db.GetSettings()
				Expect(err).NotTo(HaveOccurred())
				Expect(settings.Budget).To(Equal(1500.0))
				Expect(settings.SavingsGoal).To(Equal(6000.0))
				Expect(settings.TotalSaved).To(Equal(3000.0))
			})
		})
	})
})
