package domain

// Category partitions events for querying and for the public category pages.
type Category string

const (
	CategoryWedding           Category = "wedding"
	CategoryFifteenthBirthday Category = "fifteenth-birthday"
	CategoryBirthday          Category = "birthday"
	CategoryCorporate         Category = "corporate"
)

// CategoryInfo is the display metadata of a category.
// swagger:model CategoryInfo
type CategoryInfo struct {
	Slug        Category `json:"slug"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
}

var categories = []CategoryInfo{
	{
		Slug:        CategoryWedding,
		Title:       "Casamentos",
		Description: "Realize o casamento dos seus sonhos em um cenário encantador.",
		Image:       "/elegant-wedding-ceremony.png",
	},
	{
		Slug:        CategoryFifteenthBirthday,
		Title:       "15 Anos",
		Description: "Comemore esta data especial com uma festa inesquecível.",
		Image:       "/elegant-quinceanera.png",
	},
	{
		Slug:        CategoryBirthday,
		Title:       "Aniversários",
		Description: "Celebre mais um ano de vida em grande estilo.",
		Image:       "/elegant-gold-birthday.png",
	},
	{
		Slug:        CategoryCorporate,
		Title:       "Corporativos",
		Description: "Eventos empresariais em um ambiente sofisticado e funcional.",
		Image:       "/elegant-corporate-event.png",
	},
}

// Categories returns the fixed category enumeration in display order.
func Categories() []CategoryInfo {
	out := make([]CategoryInfo, len(categories))
	copy(out, categories)
	return out
}

// Valid reports whether c belongs to the fixed enumeration.
func (c Category) Valid() bool {
	for _, info := range categories {
		if info.Slug == c {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	return string(c)
}
