package repository

import "github.com/atinyakov/storefront/internal/models"

// SeedCatalog returns a small demo catalog.
func SeedCatalog() *CatalogRepository {
	categories := []models.Category{
		{ID: "20", Name: "Desktops", ParentID: "0", SortOrder: "1", Status: "1"},
		{ID: "18", Name: "Laptops & Notebooks", ParentID: "0", SortOrder: "2", Status: "1"},
		{ID: "24", Name: "Phones & PDAs", ParentID: "0", SortOrder: "3", Status: "1"},
		{ID: "57", Name: "Tablets", ParentID: "0", SortOrder: "4", Status: "1"},
		{ID: "33", Name: "Cameras", ParentID: "0", SortOrder: "5", Status: "1"},
		{ID: "34", Name: "MP3 Players", ParentID: "0", SortOrder: "6", Status: "1"},
	}

	manufacturers := map[string]string{"Apple": "8", "Canon": "9", "HTC": "5", "Samsung": "10"}

	product := func(id, name, model, manufacturer string, amount, special float64, rating float64, qty int, cats ...string) ProductRecord {
		stock := "In Stock"
		if qty == 0 {
			stock = "Out Of Stock"
		}
		return ProductRecord{
			Product: models.Product{
				ID:           id,
				Name:         name,
				Description:  name + " by " + manufacturer,
				Minimum:      "1",
				Rating:       rating,
				Thumb:        "catalog/demo/" + model + "-228x228.jpg",
				Image:        "catalog/demo/" + model + ".jpg",
				Href:         "/product/" + id,
				Manufacturer: manufacturer,
				Model:        model,
				StockStatus:  stock,
				Quantity:     qty,
			},
			Amount:         amount,
			SpecialAmount:  special,
			CategoryIDs:    cats,
			ManufacturerID: manufacturers[manufacturer],
		}
	}

	cinema := product("42", "Apple Cinema 30\"", "product-15", "Apple", 100, 90, 4, 990, "20")
	cinema.Options = []models.ProductOption{{
		ProductOptionID: "226",
		OptionID:        "5",
		Name:            "Select",
		Type:            "select",
		Required:        true,
		Values: []models.ProductOptionValue{
			{ProductOptionValueID: "15", OptionValueID: "39", Name: "Red", Price: "$4.00", PricePrefix: "+"},
			{ProductOptionValueID: "16", OptionValueID: "40", Name: "Blue", Price: "$3.00", PricePrefix: "+"},
		},
	}}

	canon := product("30", "Canon EOS 5D", "Product 3", "Canon", 100, 80, 5, 7, "33")
	canon.Options = []models.ProductOption{{
		ProductOptionID: "227",
		OptionID:        "6",
		Name:            "Colour",
		Type:            "select",
		Required:        false,
		Values: []models.ProductOptionValue{
			{ProductOptionValueID: "17", OptionValueID: "41", Name: "Black", Price: "$0.00", PricePrefix: "+"},
			{ProductOptionValueID: "18", OptionValueID: "42", Name: "Silver", Price: "$0.00", PricePrefix: "+"},
		},
	}}

	products := []ProductRecord{
		product("40", "iPhone", "product 11", "Apple", 101, 0, 4, 970, "20", "24"),
		product("43", "MacBook", "Product 16", "Apple", 500, 0, 3, 929, "18"),
		product("45", "MacBook Pro", "Product 18", "Apple", 2000, 0, 5, 998, "18"),
		product("48", "iPod Classic", "product 20", "Apple", 100, 0, 0, 995, "34"),
		cinema,
		canon,
		product("28", "HTC Touch HD", "Product 1", "HTC", 100, 0, 3, 939, "24"),
		product("49", "Samsung Galaxy Tab 10.1", "SAM1", "Samsung", 199.99, 0, 4, 0, "57"),
	}
	return NewCatalogRepository(products, categories)
}
