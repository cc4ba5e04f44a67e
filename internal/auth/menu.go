package auth

import "github.com/spec-kit/commodity-gate/internal/domain"

// MenuItem is one navigation entry.
type MenuItem struct {
	Label    string     `json:"label"`
	Href     string     `json:"href"`
	Children []MenuItem `json:"children,omitempty"`
}

var navigation = []MenuItem{
	{Label: "Dashboard", Href: DashboardPath},
	{Label: "Products", Href: ProductsPath, Children: []MenuItem{
		{Label: "All Products", Href: ProductsPath},
		{Label: "Add Product", Href: ProductsPath + "/add"},
	}},
	{Label: "Analytics", Href: "/analytics"},
	{Label: "Users", Href: "/users"},
}

// MenuFor returns the navigation entries role may open. Visibility comes
// from Evaluate so the menu never disagrees with the gate.
func MenuFor(role domain.Role) []MenuItem {
	return filterMenu(navigation, role)
}

func filterMenu(items []MenuItem, role domain.Role) []MenuItem {
	out := make([]MenuItem, 0, len(items))
	for _, item := range items {
		if Evaluate(item.Href, role).Kind != Allow {
			continue
		}
		item.Children = filterMenu(item.Children, role)
		if len(item.Children) == 0 {
			item.Children = nil
		}
		out = append(out, item)
	}
	return out
}
