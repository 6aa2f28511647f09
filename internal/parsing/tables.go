package parsing

// DefaultNoiseWords disqualify a line from product parsing when the line
// starts with one of them: totals, taxes, payment method words, receipt
// metadata labels, and column headers ("cantidad", "precio").
var DefaultNoiseWords = []string{
	"total",
	"subtotal",
	"iva",
	"propina",
	"efectivo",
	"cambio",
	"impuesto",
	"recibido",
	"tarjeta",
	"gracias",
	"vuelto",
	"cajero",
	"atendido",
	"fecha",
	"hora",
	"ticket",
	"factura",
	"descripcion",
	"descrip",
	"cant",
	"precio",
	"ventas",
	"gravadas",
	"exentas",
	"p.unit",
}

// DefaultReceiptWords indicate an official point-of-sale receipt as opposed
// to a casual handwritten or photographed list.
var DefaultReceiptWords = []string{
	"total",
	"subtotal",
	"iva",
	"ticket",
	"factura",
	"nit",
	"ruc",
}

// DefaultMerchants lists the recognized chains in precedence order. Each
// keyword set mixes brand names, menu items, and distinctive slang for the
// chain as it shows up on Latin American receipts.
var DefaultMerchants = []Merchant{
	{Name: "McDonald's", Keywords: []string{"mcdonald", "mc donald", "cajita feliz", "big mac", "mcflurry", "mcnifica"}},
	{Name: "Burger King", Keywords: []string{"burger king", "whopper"}},
	{Name: "KFC", Keywords: []string{"kfc", "kentucky fried"}},
	{Name: "Pizza Hut", Keywords: []string{"pizza hut"}},
	{Name: "Domino's", Keywords: []string{"domino's", "dominos"}},
	{Name: "Subway", Keywords: []string{"subway"}},
	{Name: "Starbucks", Keywords: []string{"starbucks", "frappuccino"}},
	{Name: "Taco Bell", Keywords: []string{"taco bell", "crunchwrap"}},
	{Name: "Wendy's", Keywords: []string{"wendy's", "wendys"}},
	{Name: "Pollo Campero", Keywords: []string{"pollo campero", "campero"}},
}

// DefaultMaxPlausibleTotal is the ceiling above which bare numeric tokens
// are rejected as OCR noise when hunting for a receipt's grand total.
const DefaultMaxPlausibleTotal = 5000
