package seed

import (
	"context"

	"menu-tree-be/internal/dto"
	"menu-tree-be/internal/service"

	"github.com/google/uuid"
)

// Node is one entry of the demo hierarchy. Sibling order follows slice order.
type Node struct {
	Name     string
	Url      string
	Icon     string
	Children []Node
}

// DemoMenus is the admin console hierarchy shipped with the project.
var DemoMenus = []Node{
	{Name: "system.management", Url: "/system-management", Icon: "⚙️", Children: []Node{
		{Name: "System Management", Url: "/system-management/overview", Icon: "🖥️", Children: []Node{
			{Name: "Systems", Url: "/systems", Icon: "🔧", Children: []Node{
				{Name: "System Code", Url: "/systems/code", Icon: "💻", Children: []Node{
					{Name: "Code Registration", Url: "/systems/code/registration", Icon: "📝"},
					{Name: "Code Registration - 2", Url: "/systems/code/registration-2", Icon: "📋"},
					{Name: "Properties", Url: "/systems/code/properties", Icon: "⚡"},
				}},
				{Name: "Menus", Url: "/systems/menus", Icon: "📂", Children: []Node{
					{Name: "Menu Registration", Url: "/systems/menus/registration", Icon: "➕"},
					{Name: "Menu Management", Url: "/systems/menus/management", Icon: "🔄"},
				}},
				{Name: "API List", Url: "/systems/api", Icon: "🔗", Children: []Node{
					{Name: "API Registration", Url: "/systems/api/registration", Icon: "🆕"},
					{Name: "API Edit", Url: "/systems/api/edit", Icon: "✏️"},
					{Name: "API Documentation", Url: "/systems/api/docs", Icon: "📚"},
				}},
			}},
			{Name: "Users & Groups", Url: "/users-groups", Icon: "👥", Children: []Node{
				{Name: "Users", Url: "/users-groups/users", Icon: "👤", Children: []Node{
					{Name: "User Account Registration", Url: "/users-groups/users/registration", Icon: "👤➕"},
					{Name: "User Profile Management", Url: "/users-groups/users/profile", Icon: "👤⚙️"},
					{Name: "User Permissions", Url: "/users-groups/users/permissions", Icon: "🔐"},
				}},
				{Name: "Groups", Url: "/users-groups/groups", Icon: "👥", Children: []Node{
					{Name: "User Group Registration", Url: "/users-groups/groups/registration", Icon: "👥➕"},
					{Name: "Group Permissions", Url: "/users-groups/groups/permissions", Icon: "🔒"},
				}},
			}},
		}},
	}},
	{Name: "content.management", Url: "/content", Icon: "📄", Children: []Node{
		{Name: "Content Management", Url: "/content/overview", Icon: "📝", Children: []Node{
			{Name: "Pages", Url: "/content/pages", Icon: "📃", Children: []Node{
				{Name: "Create Page", Url: "/content/pages/create", Icon: "➕"},
				{Name: "Page List", Url: "/content/pages/list", Icon: "📋"},
			}},
			{Name: "Media Library", Url: "/content/media", Icon: "🖼️", Children: []Node{
				{Name: "Upload Media", Url: "/content/media/upload", Icon: "⬆️"},
				{Name: "Media Gallery", Url: "/content/media/gallery", Icon: "🖼️"},
			}},
		}},
	}},
	{Name: "ecommerce.management", Url: "/ecommerce", Icon: "🛒", Children: []Node{
		{Name: "E-Commerce", Url: "/ecommerce/overview", Icon: "🏪", Children: []Node{
			{Name: "Products", Url: "/ecommerce/products", Icon: "📦", Children: []Node{
				{Name: "Add Product", Url: "/ecommerce/products/add", Icon: "➕"},
				{Name: "Product List", Url: "/ecommerce/products/list", Icon: "📋"},
				{Name: "Categories", Url: "/ecommerce/categories", Icon: "🏷️"},
			}},
			{Name: "Orders", Url: "/ecommerce/orders", Icon: "📋", Children: []Node{
				{Name: "Order List", Url: "/ecommerce/orders/list", Icon: "📄"},
				{Name: "Order Tracking", Url: "/ecommerce/orders/tracking", Icon: "🚚"},
			}},
		}},
	}},
	{Name: "analytics.dashboard", Url: "/analytics", Icon: "📊", Children: []Node{
		{Name: "Analytics", Url: "/analytics/overview", Icon: "📈", Children: []Node{
			{Name: "Reports", Url: "/analytics/reports", Icon: "📋", Children: []Node{
				{Name: "Sales Report", Url: "/analytics/reports/sales", Icon: "💰"},
				{Name: "User Report", Url: "/analytics/reports/users", Icon: "👥"},
				{Name: "Traffic Report", Url: "/analytics/reports/traffic", Icon: "🚦"},
			}},
			{Name: "Dashboard", Url: "/analytics/dashboard", Icon: "📊", Children: []Node{
				{Name: "Real-time Stats", Url: "/analytics/dashboard/realtime", Icon: "⚡"},
				{Name: "KPI Metrics", Url: "/analytics/dashboard/kpi", Icon: "🎯"},
			}},
		}},
	}},
}

// Result reports what Run did.
type Result struct {
	Skipped bool
	Created int
}

// Run creates nodes through the menu service so depth and order are computed
// the same way as for API clients. It does nothing when any menu exists.
func Run(ctx context.Context, svc service.IMenuService, nodes []Node) (Result, error) {
	existing, err := svc.FindAllTree(ctx)
	if err != nil {
		return Result{}, err
	}
	if len(existing) > 0 {
		return Result{Skipped: true}, nil
	}

	created := 0
	var walk func(parentId *uuid.UUID, nodes []Node) error
	walk = func(parentId *uuid.UUID, nodes []Node) error {
		for _, n := range nodes {
			url, icon := n.Url, n.Icon
			res, err := svc.Create(ctx, &dto.CreateMenuRequest{
				Name:     n.Name,
				Url:      &url,
				Icon:     &icon,
				ParentId: parentId,
			})
			if err != nil {
				return err
			}
			created++

			id := res.Id
			if err := walk(&id, n.Children); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(nil, nodes); err != nil {
		return Result{Created: created}, err
	}
	return Result{Created: created}, nil
}

// Count returns the number of nodes in a seed hierarchy.
func Count(nodes []Node) int {
	total := 0
	for _, n := range nodes {
		total += 1 + Count(n.Children)
	}
	return total
}
