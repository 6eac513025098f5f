package main

import "github.com/Heritage-Craft/artisan-marketplace-backend/models"

func media(url string) models.ProductMedia {
	return models.ProductMedia{Primary: models.MediaURL{URL: url}}
}

func sampleProducts() []models.Product {
	meera := models.Artisan{Name: "Meera Devi", Location: "Varanasi", Rating: 4.8, ReviewCount: 212}
	rafiq := models.Artisan{Name: "Rafiq Ansari", Location: "Jaipur", Rating: 4.6, ReviewCount: 98}
	lakshmi := models.Artisan{Name: "Lakshmi Narayan", Location: "Kutch", Rating: 4.9, ReviewCount: 341}
	arjun := models.Artisan{Name: "Arjun Prajapati", Location: "Khurja", Rating: 4.3, ReviewCount: 57}
	sunita := models.Artisan{Name: "Sunita Kumari", Location: "Madhubani", Rating: 4.7, ReviewCount: 164}

	return []models.Product{
		{
			Name: "Red Banarasi silk saree", Description: "Handwoven katan silk with zari buttis.",
			Price: 2000, Rating: 4.6, Category: string(models.CategorySarees), Location: "Varanasi",
			Artisan: meera, Stock: 6, Status: models.ProductStatusActive,
			Tags: models.TagsList{"silk", "banarasi", "wedding"}, Media: media("https://cdn.heritagecraft.example/sarees/red-banarasi.jpg"),
		},
		{
			Name: "Kadhua Banarasi saree", Description: "Hand-embroidered kadhua weave, six months on the loom.",
			Price: 12000, Rating: 5, Category: string(models.CategorySarees), Location: "Varanasi",
			Artisan: meera, Stock: 1, CustomOrder: true, Status: models.ProductStatusActive,
			Tags: models.TagsList{"silk", "banarasi", "heirloom"}, Media: media("https://cdn.heritagecraft.example/sarees/kadhua.jpg"),
		},
		{
			Name: "Organza Banarasi saree", Description: "Lightweight organza with silver zari border.",
			Price: 4999, Rating: 4.4, Category: string(models.CategorySarees), Location: "Varanasi",
			Artisan: meera, Stock: 3, Status: models.ProductStatusActive,
			Tags: models.TagsList{"organza", "banarasi"}, Media: media("https://cdn.heritagecraft.example/sarees/organza.jpg"),
		},
		{
			Name: "Kundan choker set", Description: "Gold-plated kundan choker with matching earrings.",
			Price: 3400, Rating: 4.5, Category: string(models.CategoryJewelry), Location: "Jaipur",
			Artisan: rafiq, CustomOrder: true, Status: models.ProductStatusActive,
			Tags: models.TagsList{"kundan", "bridal"}, Media: media("https://cdn.heritagecraft.example/jewelry/kundan.jpg"),
		},
		{
			Name: "Jaipur blue pottery vase", Description: "Quartz-based blue pottery, hand painted.",
			Price: 1250, Rating: 4.2, Category: string(models.CategoryPottery), Location: "Jaipur",
			Artisan: rafiq, Stock: 14, Status: models.ProductStatusActive,
			Tags: models.TagsList{"blue pottery", "vase"}, Media: media("https://cdn.heritagecraft.example/pottery/blue-vase.jpg"),
		},
		{
			Name: "Khurja glazed planter", Description: "Stoneware planter with floral glaze.",
			Price: 850, Rating: 3.9, Category: string(models.CategoryPottery), Location: "Khurja",
			Artisan: arjun, Stock: 22, Status: models.ProductStatusActive,
			Tags: models.TagsList{"planter", "ceramic"}, Media: media("https://cdn.heritagecraft.example/pottery/planter.jpg"),
		},
		{
			Name: "Kutch mirror-work wall hanging", Description: "Hand-stitched abhla bharat on cotton.",
			Price: 1800, Rating: 4.8, Category: string(models.CategoryHomeDecor), Location: "Kutch",
			Artisan: lakshmi, Stock: 9, Status: models.ProductStatusActive,
			Tags: models.TagsList{"mirror work", "wall art"}, Media: media("https://cdn.heritagecraft.example/decor/kutch-hanging.jpg"),
		},
		{
			Name: "Ajrakh block-printed stole", Description: "Natural-dye ajrakh print on modal silk.",
			Price: 2300, Rating: 4.7, Category: string(models.CategoryTextiles), Location: "Kutch",
			Artisan: lakshmi, Stock: 11, Status: models.ProductStatusActive,
			Tags: models.TagsList{"ajrakh", "block print"}, Media: media("https://cdn.heritagecraft.example/textiles/ajrakh.jpg"),
		},
		{
			Name: "Madhubani fish painting", Description: "Natural pigments on handmade paper.",
			Price: 3200, Rating: 4.9, Category: string(models.CategoryPaintings), Location: "Madhubani",
			Artisan: sunita, Stock: 2, CustomOrder: true, Status: models.ProductStatusActive,
			Tags: models.TagsList{"madhubani", "folk art"}, Media: media("https://cdn.heritagecraft.example/paintings/fish.jpg"),
		},
		{
			Name: "Sikki grass basket", Description: "Coiled golden grass basket with lid.",
			Price: 650, Rating: 4.1, Category: string(models.CategoryHandicrafts), Location: "Madhubani",
			Artisan: sunita, Stock: 0, Status: models.ProductStatusActive,
			Tags: models.TagsList{"sikki", "basket"}, Media: media("https://cdn.heritagecraft.example/crafts/sikki.jpg"),
		},
		{
			Name: "Madhubani peacock triptych", Description: "Three-panel commission piece, awaiting review.",
			Price: 9500, Rating: 0, Category: string(models.CategoryPaintings), Location: "Madhubani",
			Artisan: sunita, CustomOrder: true, Status: models.ProductStatusDraft,
			Tags: models.TagsList{"madhubani", "commission"}, Media: media("https://cdn.heritagecraft.example/paintings/peacock.jpg"),
		},
	}
}
