package catalog

func seedDrugs() []Drug {
	return []Drug{
		{TradeName: "Napa", GenericName: "Paracetamol", Strength: "500mg", Form: "Tablet", Formulation: "Tab. Napa 500mg"},
		{TradeName: "Ace", GenericName: "Paracetamol", Strength: "500mg", Form: "Tablet", Formulation: "Tab. Ace 500mg"},
		{TradeName: "Maxpro", GenericName: "Esomeprazole", Strength: "40mg", Form: "Capsule", Formulation: "Cap. Maxpro 40mg"},
		{TradeName: "Rex", GenericName: "Omeprazole", Strength: "20mg", Form: "Capsule", Formulation: "Cap. Rex 20mg"},
		{TradeName: "Amodis", GenericName: "Metronidazole", Strength: "400mg", Form: "Tablet", Formulation: "Tab. Amodis 400mg"},
		{TradeName: "Ceevit", GenericName: "Vitamin C", Strength: "500mg", Form: "Tablet", Formulation: "Tab. Ceevit 500mg"},
		{TradeName: "Zimax", GenericName: "Azithromycin", Strength: "500mg", Form: "Tablet", Formulation: "Tab. Zimax 500mg"},
		{TradeName: "Amdocal", GenericName: "Amlodipine", Strength: "5mg", Form: "Tablet", Formulation: "Tab. Amdocal 5mg"},
		{TradeName: "Zyloric", GenericName: "Allopurinol", Strength: "100mg", Form: "Tablet", Formulation: "Tab. Zyloric 100mg"},
		{TradeName: "Fexo", GenericName: "Fexofenadine", Strength: "120mg", Form: "Tablet", Formulation: "Tab. Fexo 120mg"},
		{TradeName: "Montene", GenericName: "Montelukast", Strength: "10mg", Form: "Tablet", Formulation: "Tab. Montene 10mg"},
		{TradeName: "Inflagic", GenericName: "Diclofenac", Strength: "50mg", Form: "Tablet", Formulation: "Tab. Inflagic 50mg"},
		{TradeName: "Orsaline", GenericName: "ORS", Strength: "Powder", Form: "Sachet", Formulation: "Sachet Orsaline"},
		{TradeName: "Seclo", GenericName: "Hyoscine", Strength: "10mg", Form: "Tablet", Formulation: "Tab. Seclo 10mg"},
		{TradeName: "Pantonix", GenericName: "Pantoprazole", Strength: "40mg", Form: "Tablet", Formulation: "Tab. Pantonix 40mg"},
	}
}

func seedInvestigations() []string {
	return []string{
		"CBC", "ESR", "RBS", "Fasting Blood Sugar", "HbA1c",
		"S. Creatinine", "S. Urea", "S. Electrolytes", "LFT",
		"Lipid Profile", "Thyroid Profile", "Urine R/E",
		"Stool R/E", "CXR", "ECG", "USG of Whole Abdomen",
		"CT Scan", "MRI", "Echo", "Troponin I", "CRP",
		"Dengue NS1", "Dengue IgG/IgM", "Malaria Antigen",
		"Widal Test", "Blood Culture", "Sputum for AFB",
	}
}

// seedAdvice lists each phrase in Bangla, then the same phrases in English.
func seedAdvice() []string {
	return []string{
		"পর্যাপ্ত পানি পান করুন",
		"পর্যাপ্ত বিশ্রাম নিন",
		"সময়মতো ওষুধ সেবন করুন",
		"নিয়মিত হাঁটাচলা করুন",
		"পরিচ্ছন্ন থাকুন",
		"পর্যাপ্ত তরল খাবার গ্রহণ করুন",
		"প্যারাসিটামল নির্দেশিত মাত্রায় সেবন করুন",
		"ঠাণ্ডা পানি দিয়ে গা মুছে দিন",
		"হালকা গরম পানি দিয়ে গোসল করুন",
		"চিনি ও মিষ্টি জাতীয় খাবার এড়িয়ে চলুন",
		"নিয়মিত ব্যায়াম করুন",
		"ওজন নিয়ন্ত্রণে রাখুন",
		"রক্তের শর্করা নিয়মিত পরীক্ষা করুন",
		"লবণ কম খান",
		"নিয়মিত রক্তচাপ পরীক্ষা করুন",
		"চর্বি জাতীয় খাবার কম খান",
		"মানসিক চাপ কম রাখুন",
		"ওআরএস খেতে থাকুন",
		"হালকা খাবার যেমন- ভাত, মুড়ি, ডাবের পানি খান",
		"তৈলাক্ত ও মসলাযুক্ত খাবার এড়িয়ে চলুন",
		"ধূলাবালি এড়িয়ে চলুন",
		"ধূমপান পরিহার করুন",
		"গরম পানির ভাপ নিন",
		"মাস্ক ব্যবহার করুন",

		"Drink plenty of water",
		"Take adequate rest",
		"Take medicines on time",
		"Walk regularly",
		"Maintain personal hygiene",
		"Take plenty of fluids",
		"Take paracetamol only as directed",
		"Sponge the body with cool water",
		"Bathe with lukewarm water",
		"Avoid sugar and sweets",
		"Exercise regularly",
		"Keep your weight under control",
		"Check blood sugar regularly",
		"Eat less salt",
		"Check blood pressure regularly",
		"Eat less fatty food",
		"Keep mental stress low",
		"Continue taking ORS",
		"Eat light food such as rice, puffed rice, coconut water",
		"Avoid oily and spicy food",
		"Avoid dust",
		"Stop smoking",
		"Take steam inhalation",
		"Wear a mask",
	}
}
