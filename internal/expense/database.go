package expense

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

const (
	transactionBucketName  = "transactions"
	notificationBucketName = "notifications"
	settingsBucketName     = "settings"

	settingsKey = "settings"
)

// DB defines the interface for database operations
type DB interface {
	// SaveTransaction saves a transaction to the database
	SaveTransaction(transaction *Transaction) error

	// GetTransaction retrieves a transaction by ID
	GetTransaction(id string) (*Transaction, error)

	// ListTransactions returns all transactions
	ListTransactions() ([]*Transaction, error)

	// DeleteTransaction removes a transaction from the database
	DeleteTransaction(id string) error

	// SaveNotification saves or updates a notification
	SaveNotification(notification *Notification) error

	// ListNotifications returns all notifications
	ListNotifications() ([]*Notification, error)

	// GetSettings retrieves the stored settings
	GetSettings() (*Settings, error)

	// SaveSettings stores the settings
	SaveSettings(settings *Settings) error

	// Close closes the database connection
	Close() error
}

// BoltDB implements the DB interface using BoltDB
type BoltDB struct {
	db *bbolt.DB
}

// NewBoltDB creates a new BoltDB instance
func NewBoltDB(path string) (*BoltDB, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}

	// Create buckets if they don't exist
	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range []string{transactionBucketName, notificationBucketName, settingsBucketName} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &BoltDB{db: db}, nil
}

// SaveTransaction saves a transaction to the database
func (b *BoltDB) SaveTransaction(transaction *Transaction) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(transactionBucketName))
		data, err := json.Marshal(transaction)
		if err != nil {
			return fmt.Errorf("marshaling transaction: %w", err)
		}
		return bucket.Put([]byte(transaction.ID), data)
	})
}

// GetTransaction retrieves a transaction by ID
func (b *BoltDB) GetTransaction(id string) (*Transaction, error) {
	var transaction *Transaction
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(transactionBucketName))
		data := bucket.Get([]byte(id))
		if data == nil {
			return fmt.Errorf("transaction %s: %w", id, ErrNotFound)
		}
		return json.Unmarshal(data, &transaction)
	})
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

// ListTransactions returns all transactions
func (b *BoltDB) ListTransactions() ([]*Transaction, error) {
	transactions := make([]*Transaction, 0)
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(transactionBucketName))
		return bucket.ForEach(func(k, v []byte) error {
			var transaction Transaction
			if err := json.Unmarshal(v, &transaction); err != nil {
				return fmt.Errorf("unmarshaling transaction: %w", err)
			}
			transactions = append(transactions, &transaction)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

// DeleteTransaction removes a transaction from the database
func (b *BoltDB) DeleteTransaction(id string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(transactionBucketName))
		if bucket.Get([]byte(id)) == nil {
			return fmt.Errorf("transaction %s: %w", id, ErrNotFound)
		}
		return bucket.Delete([]byte(id))
	})
}

// SaveNotification saves or updates a notification
func (b *BoltDB) SaveNotification(notification *Notification) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(notificationBucketName))
		data, err := json.Marshal(notification)
		if err != nil {
			return fmt.Errorf("marshaling notification: %w", err)
		}
		return bucket.Put([]byte(notification.ID), data)
	})
}

// ListNotifications returns all notifications
func (b *BoltDB) ListNotifications() ([]*Notification, error) {
	notifications := make([]*Notification, 0)
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(notificationBucketName))
		return bucket.ForEach(func(k, v []byte) error {
			var notification Notification
			if err := json.Unmarshal(v, &notification); err != nil {
				return fmt.Errorf("unmarshaling notification: %w", err)
			}
			notifications = append(notifications, &notification)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

// GetSettings retrieves the stored settings
func (b *BoltDB) GetSettings() (*Settings, error) {
	var settings *Settings
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(settingsBucketName))
		data := bucket.Get([]byte(settingsKey))
		if data == nil {
			return fmt.Errorf("settings: %w", ErrNotFound)
		}
		return json.Unmarshal(data, &settings)
	})
	if err != nil {
		return nil, err
	}
	return settings, nil
}

// SaveSettings stores the settings
func (b *BoltDB) SaveSettings(settings *Settings) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(settingsBucketName))
		data, err := json.Marshal(settings)
		if err != nil {
			return fmt.Errorf("marshaling settings: %w", err)
		}
		return bucket.Put([]byte(settingsKey), data)
	})
}

// Close closes the database connection
func (b *BoltDB) Close() error {
	return b.db.Close()
}
