package brewing

var ProcessOptions = []string{
	"Washed",
	"Natural",
	"Honey",
	"Anaerobic / Fermented",
	"Wet Hulled (Giling Basah)",
	"Experimental / Infused",
	"Lainnya (Input Manual)",
}

var VarietyOptions = []string{
	"Abyssinia",
	"Bourbon",
	"Catimor",
	"Caturra / Catuai",
	"Ethiopian Heirlooms",
	"Geisha",
	"P88",
	"Robusta (Fine Robusta)",
	"S795 (Jember)",
	"Sigararutang / Ateng",
	"Typica",
	"Mix Variety",
	"Lainnya (Input Manual)",
}

var BrewerOptions = []string{
	"April Brewer",
	"Blue Bottle Dripper",
	"Brewista Gem Series",
	"Brewista Tornado",
	"Cafec Deep 27",
	"Cafec Flower Dripper",
	"Chemex",
	"Clever Dripper",
	"Fellow Stagg [X]",
	"Hario Mugen",
	"Hario Switch",
	"Hario V60 (Plastic/Ceramic)",
	"Hero Variable Dripper",
	"Kalita 102 (Trapezoid)",
	"Kalita Wave 155 / 185",
	"Kono Meimon",
	"Latina Cono",
	"Latina Volcano",
	"Loveramics (3 Types)",
	"Melitta (Aromaboy/1x2)",
	"MHW-3Bomber Elf",
	"Orea V3 / V4",
	"Origami Dripper (S/M)",
	"Suji V60 Dripper",
	"Suji Wave Dripper",
	"The Gabi Master A/B",
	"Timemore B75",
	"Timemore Crystal Eye",
	"Torch Mountain",
	"Vietnam Drip",
	"Lainnya (Input Manual)",
}

var ProfileOptions = []ProfileOption{
	{ID: ProfileBalance, Label: "Balance & Clean"},
	{ID: ProfileSweet, Label: "More Sweetness"},
	{ID: ProfileAcidity, Label: "More Acidity"},
	{ID: ProfileBody, Label: "More Body"},
}

var defaultWater = []WaterProfile{
	{ID: "aqua", Name: "Aqua (Danone)", PPM: 140},
	{ID: "le_minerale", Name: "Le Minerale", PPM: 100},
	{ID: "nestle", Name: "Nestle Pure Life", PPM: 50},
	{ID: "cleo", Name: "Cleo (Distilled/RO)", PPM: 10},
	{ID: "amidis", Name: "Amidis (Distilled)", PPM: 0},
	{ID: OtherID, Name: "Lainnya (Input PPM)", PPM: 0},
}

func rng(lo, hi float64) Range { return Range{Min: lo, Max: hi} }

var defaultGrinders = []GrinderProfile{
	{ID: "1zpresso_jultra", Name: "1Zpresso J-Ultra", Unit: "Putaran", Coarse: rng(3.5, 4.5), Medium: rng(2.5, 3.5), Fine: rng(1.0, 1.6)},
	{ID: "1zpresso_kultra", Name: "1Zpresso K-Ultra", Unit: "Nomor", Coarse: rng(8, 9), Medium: rng(6, 7.5), Fine: rng(3, 4.5)},
	{ID: "1zpresso_q", Name: "1Zpresso Q Air / Q2", Unit: "Klik", Coarse: rng(22, 26), Medium: rng(15, 20), Fine: rng(10, 14)},
	{ID: "1zpresso_xpro", Name: "1Zpresso X-Pro / X-Ultra", Unit: "Putaran", Coarse: rng(2.0, 2.4), Medium: rng(1.2, 1.5), Fine: rng(0.3, 0.5)},
	{ID: "1zpresso_zp6", Name: "1Zpresso ZP6 Special", Unit: "Nomor", Coarse: rng(6.0, 7.5), Medium: rng(3.5, 5.5), Fine: rng(0, 0)},
	{ID: "breville_smart", Name: "Breville Smart Grinder Pro", Unit: "Setting", Coarse: rng(50, 60), Medium: rng(30, 45), Fine: rng(1, 25)},
	{ID: "comandante", Name: "Comandante C40 MK4", Unit: "Klik", Coarse: rng(25, 32), Medium: rng(18, 24), Fine: rng(10, 15)},
	{ID: "comandante_c60", Name: "Comandante C60 Baracuda", Unit: "Klik", Coarse: rng(35, 45), Medium: rng(20, 30), Fine: rng(10, 18)},
	{ID: "etzinger_etzi", Name: "Etzinger etz-I", Unit: "Angka", Coarse: rng(18, 22), Medium: rng(12, 16), Fine: rng(4, 8)},
	{ID: "hario_canister", Name: "Hario Canister (C-20)", Unit: "Notch", Coarse: rng(4, 5), Medium: rng(2, 3), Fine: rng(1, 1)},
	{ID: "hario_minislim", Name: "Hario Mini Slim+", Unit: "Klik", Coarse: rng(10, 13), Medium: rng(7, 10), Fine: rng(3, 5)},
	{ID: "hario_skerton", Name: "Hario Skerton Pro", Unit: "Notch", Coarse: rng(8, 10), Medium: rng(5, 7), Fine: rng(1, 4)},
	{ID: "kingrinder_k6", Name: "Kingrinder K6", Unit: "Klik", Coarse: rng(90, 120), Medium: rng(60, 90), Fine: rng(30, 50)},
	{ID: "kingrinder_p", Name: "Kingrinder P0/P1/P2", Unit: "Klik", Coarse: rng(35, 45), Medium: rng(20, 30), Fine: rng(15, 20)},
	{ID: "kinu_m47", Name: "Kinu M47", Unit: "Putaran", Coarse: rng(4.0, 5.0), Medium: rng(2.5, 3.5), Fine: rng(0.8, 1.2)},
	{ID: "latina_sumba", Name: "Latina Sumba / Sumbawa", Unit: "Klik", Coarse: rng(10, 14), Medium: rng(7, 10), Fine: rng(3, 5)},
	{ID: "latina_sumo", Name: "Latina Sumo", Unit: "Klik", Coarse: rng(20, 25), Medium: rng(15, 20), Fine: rng(8, 12)},
	{ID: "mazzer_omega", Name: "Mazzer Omega", Unit: "Angka", Coarse: rng(9, 11), Medium: rng(6, 8), Fine: rng(1, 3)},
	{ID: "oe_lido", Name: "OE Lido 3 / OG", Unit: "Mark", Coarse: rng(12, 15), Medium: rng(6, 10), Fine: rng(2, 4)},
	{ID: "pietro", Name: "Pietro (Flat Burr)", Unit: "Angka", Coarse: rng(7, 9), Medium: rng(5, 7), Fine: rng(1, 2.5)},
	{ID: "porlex_mini", Name: "Porlex Mini II", Unit: "Klik", Coarse: rng(10, 13), Medium: rng(7, 9), Fine: rng(3, 5)},
	{ID: "starseeker_edge", Name: "Starseeker Edge / Edge+", Unit: "Klik", Coarse: rng(80, 100), Medium: rng(50, 70), Fine: rng(20, 40)},
	{ID: "timemore_c2", Name: "Timemore C2 / C3", Unit: "Klik", Coarse: rng(20, 26), Medium: rng(13, 16), Fine: rng(10, 12)},
	{ID: "timemore_c3esp", Name: "Timemore C3 ESP", Unit: "Klik/Putaran", Coarse: rng(21, 25), Medium: rng(14, 18), Fine: rng(0.8, 1.1)},
	{ID: "timemore_chestnut_x", Name: "Timemore Chestnut X", Unit: "Mayor", Coarse: rng(20, 24), Medium: rng(14, 18), Fine: rng(6, 10)},
	{ID: "timemore_nano", Name: "Timemore Nano / Plus", Unit: "Klik", Coarse: rng(20, 24), Medium: rng(14, 18), Fine: rng(10, 12)},
	{ID: "timemore_s3", Name: "Timemore S3", Unit: "Angka", Coarse: rng(7.5, 9.0), Medium: rng(4.5, 6.5), Fine: rng(1.5, 3.0)},
	{ID: "timemore_slimplus", Name: "Timemore Slim Plus", Unit: "Klik", Coarse: rng(22, 26), Medium: rng(15, 20), Fine: rng(10, 14)},
	{ID: "varia_hand", Name: "Varia Hand Grinder", Unit: "Klik", Coarse: rng(90, 110), Medium: rng(60, 85), Fine: rng(20, 40)},
	{ID: "wacaco_exagrind", Name: "Wacaco Exagrind", Unit: "Putaran/Klik", Coarse: rng(1.5, 2.0), Medium: rng(1.0, 1.3), Fine: rng(0, 20)},
	{ID: OtherID, Name: "Lainnya (Input Manual)", Unit: "Custom"},
}

var defaultDrippers = []Dripper{
	{Name: "April Brewer", Brand: "April", Type: "Flat Bottom Dripper"},
	{Name: "Blue Bottle Dripper", Brand: "Blue Bottle", Type: "Flat Bottom Dripper"},
	{Name: "Brewista Gem Series", Brand: "Brewista", Type: "Gem Series Dripper"},
	{Name: "Brewista Tornado", Brand: "Brewista", Type: "Tornado Duo Dripper"},
	{Name: "Cafec Deep 27", Brand: "Cafec", Type: "Deep 27 Flower Dripper"},
	{Name: "Cafec Flower Dripper", Brand: "Cafec", Type: "Flower Dripper (Cone)"},
	{Name: "Chemex", Brand: "Chemex", Type: "Pour-over Glass Coffeemaker"},
	{Name: "Clever Dripper", Brand: "Clever", Type: "Immersion Dripper"},
	{Name: "Fellow Stagg [X]", Brand: "Fellow", Type: "Stagg [X] Flat Bottom"},
	{Name: "Hario Mugen", Brand: "Hario", Type: "V60 Mugen (One Pour)"},
	{Name: "Hario Switch", Brand: "Hario", Type: "Immersion Switch"},
	{Name: "Hario V60", Brand: "Hario", Type: "V60 Plastic/Ceramic/Glass"},
	{Name: "Hero Variable Dripper", Brand: "Hero", Type: "Variable Flow Dripper"},
	{Name: "Kalita 102", Brand: "Kalita", Type: "Trapezoid Dripper"},
	{Name: "Kalita Wave 155 / 185", Brand: "Kalita", Type: "Wave Flat Bottom"},
	{Name: "Kono Meimon", Brand: "Kono", Type: "Meimon Dripper"},
	{Name: "Latina Cono", Brand: "Latina", Type: "Cono Dripper"},
	{Name: "Latina Volcano", Brand: "Latina", Type: "Volcano Dripper"},
	{Name: "Loveramics", Brand: "Loveramics", Type: "Brewers (3 Flow Types)"},
	{Name: "Melitta", Brand: "Melitta", Type: "Aromaboy / 1x2 Trapezoid"},
	{Name: "MHW-3Bomber Elf", Brand: "MHW-3Bomber", Type: "Elf Dripper"},
	{Name: "Orea V3 / V4", Brand: "Orea", Type: "Flat Bottom Brewer"},
	{Name: "Origami Dripper (S/M)", Brand: "Origami", Type: "Folded Cone Dripper"},
	{Name: "Suji V60 Dripper", Brand: "Suji", Type: "Pourover Dripper"},
	{Name: "Suji Wave Dripper", Brand: "Suji", Type: "Wave Dripper"},
	{Name: "The Gabi Master A/B", Brand: "The Gabi", Type: "Master A/B Dripper"},
	{Name: "Timemore B75", Brand: "Timemore", Type: "B75 Flat Bottom"},
	{Name: "Timemore Crystal Eye", Brand: "Timemore", Type: "Crystal Eye V60"},
	{Name: "Torch Mountain", Brand: "Torch", Type: "Mountain Dripper"},
	{Name: "Vietnam Drip", Brand: "No Brand", Type: "Gravity Insert Dripper"},
}
