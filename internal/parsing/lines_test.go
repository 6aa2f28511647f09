package parsing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("parseLines", func() {
	var (
		parser *Parser
		text   string
		items  []CandidateItem
	)

	BeforeEach(func() {
		parser = NewParser(Config{})
	})

	JustBeforeEach(func() {
		items = parser.parseLines(text)
	})

	When("a line has a description and a trailing price", func() {
		BeforeEach(func() {
			text = "Coca Cola 1.50"
		})

		It("extracts a candidate item", func() {
			Expect(items).To(Equal([]CandidateItem{{Description: "Coca Cola", Amount: 1.50}}))
		})
	})

	When("the price uses a comma decimal separator", func() {
		BeforeEach(func() {
			text = "Cerveza 2,50"
		})

		It("normalizes the separator", func() {
			Expect(items).To(Equal([]CandidateItem{{Description: "Cerveza", Amount: 2.50}}))
		})
	})

	When("the price carries a currency symbol", func() {
		BeforeEach(func() {
			text = "Cerveza $2.50"
		})

		It("extracts the amount without the symbol", func() {
			Expect(items).To(Equal([]CandidateItem{{Description: "Cerveza", Amount: 2.50}}))
		})
	})

	When("a line starts with a quantity count", func() {
		BeforeEach(func() {
			text = "2 Hamburguesa 5.00"
		})

		It("strips the leading quantity", func() {
			Expect(items).To(Equal([]CandidateItem{{Description: "Hamburguesa", Amount: 5.00}}))
		})
	})

	When("lines match the noise vocabulary", func() {
		BeforeEach(func() {
			text = "TOTAL 45.00\nSUBTOTAL 40.00\nIVA 5.85\nEFECTIVO 50.00"
		})

		It("emits nothing", func() {
			Expect(items).To(BeEmpty())
		})
	})

	When("a line has no trailing numeric token", func() {
		BeforeEach(func() {
			text = "Atendido por Maria\nBienvenido a la tienda"
		})

		It("emits nothing", func() {
			Expect(items).To(BeEmpty())
		})
	})

	When("a line contains multiple numeric substrings", func() {
		BeforeEach(func() {
			text = "Refresco 600ml 1.25"
		})

		It("uses only the trailing token as the price", func() {
			Expect(items).To(Equal([]CandidateItem{{Description: "Refresco 600ml", Amount: 1.25}}))
		})
	})

	When("the amount is zero", func() {
		BeforeEach(func() {
			text = "Bolsa 0.00"
		})

		It("discards the line", func() {
			Expect(items).To(BeEmpty())
		})
	})

	When("the cleaned description is a single character", func() {
		BeforeEach(func() {
			text = "X 5.00"
		})

		It("discards the line", func() {
			Expect(items).To(BeEmpty())
		})
	})

	When("the description is wrapped in stray symbols", func() {
		BeforeEach(func() {
			text = "* Pan Dulce ** 0.75"
		})

		It("strips the surrounding symbols", func() {
			Expect(items).To(Equal([]CandidateItem{{Description: "Pan Dulce", Amount: 0.75}}))
		})
	})

	When("duplicate product lines appear", func() {
		BeforeEach(func() {
			text = "Soda 1.00\nSoda 1.00"
		})

		It("emits both in line order", func() {
			Expect(items).To(Equal([]CandidateItem{
				{Description: "Soda", Amount: 1.00},
				{Description: "Soda", Amount: 1.00},
			}))
		})
	})
})
