package receipts

func strPtr(s string) *string { return &s }

func targetPayload() Payload {
	return Payload{
		Retailer:     "Target",
		PurchaseDate: "2022-01-01",
		PurchaseTime: "13:01",
		Items: []ItemPayload{
			{ShortDescription: strPtr("Mountain Dew 12PK"), Price: "6.49"},
			{ShortDescription: strPtr("Emils Cheese Pizza"), Price: "12.25"},
			{ShortDescription: strPtr("Knorr Creamy Chicken"), Price: "1.26"},
			{ShortDescription: strPtr("Doritos Nacho Cheese"), Price: "3.35"},
			{ShortDescription: strPtr("   Klarbrunn 12-PK 12 FL OZ  "), Price: "12.00"},
		},
		Total: "35.35",
	}
}

func cornerMarketPayload() Payload {
	return Payload{
		Retailer:     "M&M Corner Market",
		PurchaseDate: "2022-03-20",
		PurchaseTime: "14:33",
		Items: []ItemPayload{
			{ShortDescription: strPtr("Gatorade"), Price: "2.25"},
			{ShortDescription: strPtr("Gatorade"), Price: "2.25"},
			{ShortDescription: strPtr("Gatorade"), Price: "2.25"},
			{ShortDescription: strPtr("Gatorade"), Price: "2.25"},
		},
		Total: "9.00",
	}
}

func mustParse(p Payload) Receipt {
	rec, err := ParsePayload(p)
	if err != nil {
		panic(err)
	}
	return rec
}
