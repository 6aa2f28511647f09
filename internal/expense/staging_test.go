package expense

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LocalStaging", func() {
	var (
		tmpDir  string
		staging *LocalStaging
	)

	BeforeEach(func() {
		tmpDir = filepath.Join(GinkgoT().TempDir(), "staging")
		var err error
		staging, err = NewLocalStaging(tmpDir)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("NewLocalStaging", func() {
		It("creates the staging directory", func() {
			info, err := os.Stat(tmpDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(info.IsDir()).To(BeTrue())
		})
	})

	Describe("Stage", func() {
		It("writes the file and returns its staged name", func() {
			name, err := staging.Stage("receipt.jpg", []byte("image data"))
			Expect(err).NotTo(HaveOccurred())
			Expect(name).To(Equal("receipt.jpg"))

			content, err := os.ReadFile(filepath.Join(tmpDir, "receipt.jpg"))
			Expect(err).NotTo(HaveOccurred())
			Expect(string(content)).To(Equal("image data"))
		})
	})

	Describe("Read", func() {
		When("the file exists", func() {
			BeforeEach(func() {
				_, err := staging.Stage("receipt.jpg", []byte("image data"))
				Expect(err).NotTo(HaveOccurred())
			})

			It("returns its content", func() {
				data, err := staging.Read("receipt.jpg")
				Expect(err).NotTo(HaveOccurred())
				Expect(string(data)).To(Equal("image data"))
			})
		})

		When("the file does not exist", func() {
			It("returns an error", func() {
				_, err := staging.Read("missing.jpg")
				Expect(err).To(HaveOccurred())
			})
		})
	})

	Describe("Remove", func() {
		When("the file exists", func() {
			BeforeEach(func() {
				_, err := staging.Stage("receipt.jpg", []byte("image data"))
				Expect(err).NotTo(HaveOccurred())
			})

			It("deletes it from disk", func() {
				Expect(staging.Remove("receipt.jpg")).To(Succeed())
				_, err := os.Stat(filepath.Join(tmpDir, "receipt.jpg"))
				Expect(os.IsNotExist(err)).To(BeTrue())
			})
		})

		When("the file does not exist", func() {
			It("returns an error", func() {
				Expect(staging.Remove("missing.jpg")).To(HaveOccurred())
			})
		})
	})
})
