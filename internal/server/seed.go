package server

import (
	"github.com/shopspring/decimal"

	"shopfront/internal/catalog"
)

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// SeedProducts is the built-in catalog the service boots with. A catalog
// file or a feed refresh extends or replaces it at runtime.
func SeedProducts() []catalog.Product {
	return []catalog.Product{
		{
			ID:          1,
			Name:        "Nike Air Max 270 Running Shoes",
			Description: "Comfortable lightweight running shoes with air cushioning, perfect for daily workouts and casual wear",
			Price:       price("89.99"),
			Currency:    "USD",
			Category:    "Footwear",
			Brand:       "Nike",
			ImageURL:    "https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=300&h=300&fit=crop&crop=center",
			Rating:      4.5,
			ReviewCount: 1250,
			Tags:        []string{"running", "comfortable", "athletic", "casual", "breathable"},
		},
		{
			ID:          2,
			Name:        "Apple MacBook Air M2",
			Description: "Powerful lightweight laptop with M2 chip, perfect for students and professionals. 13-inch display, 8GB RAM",
			Price:       price("1199.00"),
			Currency:    "USD",
			Category:    "Electronics",
			Brand:       "Apple",
			ImageURL:    "https://images.unsplash.com/photo-1517336714731-489689fd1ca8?w=300&h=300&fit=crop&crop=center",
			Rating:      4.8,
			ReviewCount: 890,
			Tags:        []string{"laptop", "student", "professional", "portable", "fast"},
		},
		{
			ID:          3,
			Name:        "Sony WH-1000XM5 Wireless Headphones",
			Description: "Premium noise-canceling headphones with excellent bass and 30-hour battery life",
			Price:       price("279.99"),
			Currency:    "USD",
			Category:    "Electronics",
			Brand:       "Sony",
			ImageURL:    "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=300&h=300&fit=crop&crop=center",
			Rating:      4.7,
			ReviewCount: 2100,
			Tags:        []string{"wireless", "noise-canceling", "bass", "premium", "long-battery"},
		},
		{
			ID:          4,
			Name:        "Levi's 501 Original Jeans",
			Description: "Classic straight-fit denim jeans, timeless style and durable construction",
			Price:       price("59.99"),
			Currency:    "USD",
			Category:    "Clothing",
			Brand:       "Levi's",
			ImageURL:    "https://images.unsplash.com/photo-1541099649105-f69ad21f3246?w=300&h=300&fit=crop&crop=center",
			Rating:      4.3,
			ReviewCount: 750,
			Tags:        []string{"jeans", "classic", "denim", "durable", "casual"},
		},
		{
			ID:          5,
			Name:        "Instant Pot Duo 7-in-1 Pressure Cooker",
			Description: "Multi-functional kitchen appliance: pressure cooker, slow cooker, rice cooker, steamer, and more",
			Price:       price("79.99"),
			Currency:    "USD",
			Category:    "Home & Kitchen",
			Brand:       "Instant Pot",
			ImageURL:    "./instantpot.jpg",
			Rating:      4.6,
			ReviewCount: 5600,
			Tags:        []string{"kitchen", "cooking", "multi-functional", "pressure-cooker", "convenient"},
		},
		{
			ID:          6,
			Name:        "Adidas Ultraboost 22 Running Shoes",
			Description: "High-performance running shoes with responsive Boost midsole and breathable upper",
			Price:       price("95.00"),
			Currency:    "USD",
			Category:    "Footwear",
			Brand:       "Adidas",
			ImageURL:    "/adidas.jpg",
			Rating:      4.4,
			ReviewCount: 980,
			Tags:        []string{"running", "performance", "boost", "breathable", "athletic"},
		},
		{
			ID:          7,
			Name:        "ASUS ZenBook 14 Laptop",
			Description: "Affordable student laptop with Intel i5 processor, 8GB RAM, perfect for coding and studying",
			Price:       price("649.99"),
			Currency:    "USD",
			Category:    "Electronics",
			Brand:       "ASUS",
			ImageURL:    "/asus.jpg",
			Rating:      4.2,
			ReviewCount: 445,
			Tags:        []string{"laptop", "budget", "student", "coding", "affordable"},
		},
		{
			ID:          8,
			Name:        "JBL Charge 5 Portable Speaker",
			Description: "Waterproof Bluetooth speaker with powerful bass and 20-hour battery life",
			Price:       price("129.99"),
			Currency:    "USD",
			Category:    "Electronics",
			Brand:       "JBL",
			ImageURL:    "/jbl.jpg",
			Rating:      4.5,
			ReviewCount: 1800,
			Tags:        []string{"speaker", "bluetooth", "waterproof", "bass", "portable"},
		},
		{
			ID:          9,
			Name:        "Samsung Galaxy S24 Ultra",
			Description: "Premium smartphone with 200MP camera, S Pen, and all-day battery life",
			Price:       price("1299.99"),
			Currency:    "USD",
			Category:    "Electronics",
			Brand:       "Samsung",
			ImageURL:    "/samsungs24.jpg",
			Rating:      4.6,
			ReviewCount: 3200,
			Tags:        []string{"smartphone", "camera", "premium", "s-pen", "android"},
		},
		{
			ID:          10,
			Name:        "Nintendo Switch OLED",
			Description: "Portable gaming console with vibrant OLED screen and versatile gameplay",
			Price:       price("349.99"),
			Currency:    "USD",
			Category:    "Electronics",
			Brand:       "Nintendo",
			ImageURL:    "/switch.jpg",
			Rating:      4.8,
			ReviewCount: 4500,
			Tags:        []string{"gaming", "portable", "console", "oled", "family-friendly"},
		},
		{
			ID:          11,
			Name:        "Allbirds Tree Runners",
			Description: "Sustainable sneakers made from eucalyptus tree fiber, incredibly comfortable for all-day wear",
			Price:       price("98.00"),
			Currency:    "USD",
			Category:    "Footwear",
			Brand:       "Allbirds",
			ImageURL:    "/allbirds.jpg",
			Rating:      4.3,
			ReviewCount: 1850,
			Tags:        []string{"sustainable", "comfortable", "eco-friendly", "casual", "lightweight"},
		},
		{
			ID:          12,
			Name:        "Fitbit Charge 5",
			Description: "Advanced fitness tracker with GPS, stress management, and 7-day battery life",
			Price:       price("149.99"),
			Currency:    "USD",
			Category:    "Electronics",
			Brand:       "Fitbit",
			ImageURL:    "/fitbit.jpg",
			Rating:      4.2,
			ReviewCount: 2900,
			Tags:        []string{"fitness-tracker", "gps", "health", "battery", "stress-management"},
		},
		{
			ID:          13,
			Name:        "Herman Miller Aeron Chair",
			Description: "Ergonomic office chair with breathable mesh and lumbar support, perfect for long work sessions",
			Price:       price("1395.00"),
			Currency:    "USD",
			Category:    "Furniture",
			Brand:       "Herman Miller",
			ImageURL:    "/herman.jpg",
			Rating:      4.8,
			ReviewCount: 1200,
			Tags:        []string{"office-chair", "ergonomic", "comfortable", "work", "lumbar-support"},
		},
		{
			ID:          14,
			Name:        "Hydro Flask Water Bottle",
			Description: "Insulated stainless steel water bottle that keeps drinks cold for 24 hours",
			Price:       price("44.95"),
			Currency:    "USD",
			Category:    "Sports & Outdoors",
			Brand:       "Hydro Flask",
			ImageURL:    "/yeti.jpg",
			Rating:      4.6,
			ReviewCount: 5400,
			Tags:        []string{"water-bottle", "insulated", "cold", "outdoor", "hydration"},
		},
		{
			ID:          15,
			Name:        "AirPods Pro 2nd Gen",
			Description: "Apple's premium wireless earbuds with adaptive transparency and spatial audio",
			Price:       price("249.00"),
			Currency:    "USD",
			Category:    "Electronics",
			Brand:       "Apple",
			ImageURL:    "/airpods.jpg",
			Rating:      4.6,
			ReviewCount: 8900,
			Tags:        []string{"earbuds", "wireless", "apple", "spatial-audio", "transparency"},
		},
		{
			ID:          16,
			Name:        "Crocs Classic Clogs",
			Description: "Comfortable foam clogs with ventilation holes, perfect for casual wear and gardening",
			Price:       price("44.99"),
			Currency:    "USD",
			Category:    "Footwear",
			Brand:       "Crocs",
			ImageURL:    "./crocs.jpg",
			Rating:      4.1,
			ReviewCount: 12000,
			Tags:        []string{"clogs", "comfortable", "casual", "easy-to-clean", "ventilated"},
		},
	}
}
