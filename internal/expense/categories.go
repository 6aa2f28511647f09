package expense

import "strings"

// Category describes a spending category as the UI renders it.
type Category struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`

	// keywords drive the auto-suggestion for uncategorized transactions.
	keywords []string
}

// defaultCategories lists the built-in categories in precedence order.
var defaultCategories = []Category{
	{Name: "Comida", Icon: "fas fa-utensils", Color: "#ff6384",
		keywords: []string{"restaurante", "comida", "almuerzo", "desayuno", "cena", "pizza", "cafe", "panaderia", "super"}},
	{Name: "Transporte", Icon: "fas fa-car", Color: "#36a2eb",
		keywords: []string{"uber", "taxi", "bus", "pasaje", "gasolina", "combustible"}},
	{Name: "Compras", Icon: "fas fa-shopping-bag", Color: "#cc65fe",
		keywords: []string{"tienda", "ropa", "zapatos", "amazon"}},
	{Name: "Entretenimiento", Icon: "fas fa-film", Color: "#ffce56",
		keywords: []string{"cine", "netflix", "spotify", "concierto", "juego"}},
	{Name: "Alquiler", Icon: "fas fa-home", Color: "#4bc0c0",
		keywords: []string{"alquiler", "renta"}},
	{Name: "Salario", Icon: "fas fa-money-bill-wave", Color: "#9966ff",
		keywords: []string{"salario", "sueldo", "quincena"}},
}

// Categories returns the category table.
func Categories() []Category {
	return defaultCategories
}

// SuggestCategory proposes a category for a transaction description by
// keyword substring match, first hit in table order wins. Returns the empty
// string when nothing matches; the user picks manually in that case.
func SuggestCategory(description string) string {
	lower := strings.ToLower(description)
	for _, c := range defaultCategories {
		for _, keyword := range c.keywords {
			if strings.Contains(lower, keyword) {
				return c.Name
			}
		}
	}
	return ""
}
