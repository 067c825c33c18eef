package extract

import "dealerops/internal/domain"

// brandRules is checked in order; the first brand found wins. Word boundaries
// keep model numbers such as "BMW3" from matching as a brand.
var brandRules = []Rule{
	rule("Tesla", `(?i)\bTesla\b`),
	rule("BMW", `(?i)\bBMW\b`),
	rule("Mercedes-Benz", `(?i)\bMercedes(?:[ -]Benz)?\b|\bBenz\b`),
	rule("Audi", `(?i)\bAudi\b`),
	rule("Porsche", `(?i)\bPorsche\b`),
	rule("Volkswagen", `(?i)\b(?:Volkswagen|VW)\b`),
	rule("Toyota", `(?i)\bToyota\b`),
	rule("Lexus", `(?i)\bLexus\b`),
	rule("Honda", `(?i)\bHonda\b`),
	rule("Nissan", `(?i)\bNissan\b`),
	rule("Hyundai", `(?i)\bHyundai\b`),
	rule("Kia", `(?i)\bKia\b`),
	rule("Ford", `(?i)\bFord\b`),
	rule("Chevrolet", `(?i)\b(?:Chevrolet|Chevy)\b`),
	rule("Volvo", `(?i)\bVolvo\b`),
	rule("Polestar", `(?i)\bPolestar\b`),
	rule("BYD", `(?i)\bBYD\b`),
	rule("NIO", `(?i)\bNIO\b`),
	rule("XPeng", `(?i)\bX-?Peng\b`),
	rule("Li Auto", `(?i)\bLi[ -]?Auto\b`),
	rule("Zeekr", `(?i)\bZeekr\b`),
	rule("Lucid", `(?i)\bLucid\b`),
	rule("Rivian", `(?i)\bRivian\b`),
	rule("Jaguar", `(?i)\bJaguar\b`),
	rule("Land Rover", `(?i)\bLand[ -]?Rover\b`),
	rule("Genesis", `(?i)\bGenesis\b`),
	rule("Mazda", `(?i)\bMazda\b`),
	rule("Subaru", `(?i)\bSubaru\b`),
	rule("Jeep", `(?i)\bJeep\b`),
	rule("MINI", `(?i)\bMINI\b`),
}

// colorPrefix tolerates the marketing modifiers manufacturers put in front
// of a base colour ("Alpine White", "Pearl Metallic Black").
const colorPrefix = `(?:(?:pearl|metallic|matte|satin|alpine|mineral|glacier|arctic|polar|solid|deep|dark|light|midnight|space|sapphire|obsidian|crystal|brilliant|frozen|ultra)[ -]+)*`

var colorRules = []Rule{
	rule("White", `(?i)\b`+colorPrefix+`white\b`),
	rule("Black", `(?i)\b`+colorPrefix+`black\b`),
	rule("Silver", `(?i)\b`+colorPrefix+`silver\b`),
	rule("Grey", `(?i)\b`+colorPrefix+`gr[ae]y\b`),
	rule("Blue", `(?i)\b`+colorPrefix+`blue\b`),
	rule("Red", `(?i)\b`+colorPrefix+`red\b`),
	rule("Green", `(?i)\b`+colorPrefix+`green\b`),
	rule("Yellow", `(?i)\b`+colorPrefix+`yellow\b`),
	rule("Orange", `(?i)\b`+colorPrefix+`orange\b`),
	rule("Brown", `(?i)\b`+colorPrefix+`brown\b`),
	rule("Beige", `(?i)\b`+colorPrefix+`beige\b`),
	rule("Gold", `(?i)\b`+colorPrefix+`gold\b`),
	rule("Purple", `(?i)\b`+colorPrefix+`purple\b`),
}

// categoryRules are in priority order: electric, then range-extended or
// hybrid, then combustion.
var categoryRules = []Rule{
	rule(string(domain.CategoryEV), `(?i)\b(?:electric|EV|BEV|battery[ -]electric|kWh|e-tron|zero[ -]emissions?)\b`),
	rule(string(domain.CategoryREV), `(?i)\b(?:range[ -]extend(?:er|ed)|EREV|REV|PHEV|plug-in[ -]hybrid|hybrid)\b`),
	rule(string(domain.CategoryICEV), `(?i)\b(?:ICEV|internal[ -]combustion|combustion[ -]engine|petrol|gasoline|diesel)\b`),
}

// modelRules holds brand-specific model tables. More specific names come
// before the names they contain.
var modelRules = map[string][]Rule{
	"BMW": {
		rule("iX M60", `(?i)\biX\s*M60\b`),
		rule("iX xDrive50", `(?i)\biX\s*xDrive\s*50\b`),
		rule("iX3", `(?i)\biX3\b`),
		rule("iX1", `(?i)\biX1\b`),
		rule("iX", `(?i)\biX\b`),
		rule("i7", `(?i)\bi7\b`),
		rule("i5", `(?i)\bi5\b`),
		rule("i4", `(?i)\bi4\b`),
		rule("i3", `(?i)\bi3\b`),
		rule("X7", `(?i)\bX7\b`),
		rule("X5", `(?i)\bX5\b`),
		rule("X3", `(?i)\bX3\b`),
		rule("3 Series", `(?i)\b3\s*Series\b`),
		rule("5 Series", `(?i)\b5\s*Series\b`),
		rule("7 Series", `(?i)\b7\s*Series\b`),
	},
	"Tesla": {
		rule("Model 3", `(?i)\bModel\s*3\b`),
		rule("Model Y", `(?i)\bModel\s+Y\b`),
		rule("Model S", `(?i)\bModel\s+S\b`),
		rule("Model X", `(?i)\bModel\s+X\b`),
		rule("Cybertruck", `(?i)\bCybertruck\b`),
	},
	"Mercedes-Benz": {
		rule("EQS", `(?i)\bEQS\b`),
		rule("EQE", `(?i)\bEQE\b`),
		rule("EQA", `(?i)\bEQA\b`),
		rule("EQB", `(?i)\bEQB\b`),
		rule("EQC", `(?i)\bEQC\b`),
		rule("G-Class", `(?i)\bG[ -]?Class\b`),
		rule("S-Class", `(?i)\bS[ -]?Class\b`),
		rule("E-Class", `(?i)\bE[ -]?Class\b`),
		rule("C-Class", `(?i)\bC[ -]?Class\b`),
		rule("GLE", `(?i)\bGLE\b`),
		rule("GLC", `(?i)\bGLC\b`),
	},
	"Audi": {
		rule("Q8 e-tron", `(?i)\bQ8\s*e-tron\b`),
		rule("Q4 e-tron", `(?i)\bQ4\s*e-tron\b`),
		rule("e-tron GT", `(?i)\be-tron\s*GT\b`),
		rule("Q6 e-tron", `(?i)\bQ6\s*e-tron\b`),
		rule("e-tron", `(?i)\be-tron\b`),
		rule("A6", `(?i)\bA6\b`),
		rule("Q5", `(?i)\bQ5\b`),
		rule("Q7", `(?i)\bQ7\b`),
	},
	"Porsche": {
		rule("Taycan", `(?i)\bTaycan\b`),
		rule("Macan", `(?i)\bMacan\b`),
		rule("Cayenne", `(?i)\bCayenne\b`),
		rule("911", `\b911\b`),
	},
	"Volkswagen": {
		rule("ID. Buzz", `(?i)\bID\.?\s*Buzz\b`),
		rule("ID.7", `(?i)\bID\.?\s*7\b`),
		rule("ID.4", `(?i)\bID\.?\s*4\b`),
		rule("ID.3", `(?i)\bID\.?\s*3\b`),
		rule("Golf", `(?i)\bGolf\b`),
		rule("Tiguan", `(?i)\bTiguan\b`),
		rule("Passat", `(?i)\bPassat\b`),
	},
	"Toyota": {
		rule("bZ4X", `(?i)\bbZ4X\b`),
		rule("Land Cruiser", `(?i)\bLand\s*Cruiser\b`),
		rule("RAV4", `(?i)\bRAV\s*4\b`),
		rule("Camry", `(?i)\bCamry\b`),
		rule("Prius", `(?i)\bPrius\b`),
		rule("Corolla", `(?i)\bCorolla\b`),
	},
	"Lexus": {
		rule("RZ", `(?i)\bRZ\b`),
		rule("UX", `(?i)\bUX\b`),
		rule("RX", `(?i)\bRX\b`),
		rule("NX", `(?i)\bNX\b`),
	},
	"Honda": {
		rule("CR-V", `(?i)\bCR-?V\b`),
		rule("Civic", `(?i)\bCivic\b`),
		rule("Accord", `(?i)\bAccord\b`),
	},
	"Nissan": {
		rule("Ariya", `(?i)\bAriya\b`),
		rule("Leaf", `(?i)\bLeaf\b`),
	},
	"Hyundai": {
		rule("Ioniq 5", `(?i)\bIoniq\s*5\b`),
		rule("Ioniq 6", `(?i)\bIoniq\s*6\b`),
		rule("Kona", `(?i)\bKona\b`),
		rule("Tucson", `(?i)\bTucson\b`),
	},
	"Kia": {
		rule("EV9", `(?i)\bEV9\b`),
		rule("EV6", `(?i)\bEV6\b`),
		rule("Niro", `(?i)\bNiro\b`),
		rule("Sportage", `(?i)\bSportage\b`),
	},
	"Ford": {
		rule("Mustang Mach-E", `(?i)\bMustang\s+Mach-?E\b`),
		rule("F-150 Lightning", `(?i)\bF-?150\s+Lightning\b`),
		rule("F-150", `(?i)\bF-?150\b`),
		rule("Mustang", `(?i)\bMustang\b`),
		rule("Explorer", `(?i)\bExplorer\b`),
	},
	"Chevrolet": {
		rule("Bolt", `(?i)\bBolt\b`),
		rule("Silverado", `(?i)\bSilverado\b`),
		rule("Equinox", `(?i)\bEquinox\b`),
	},
	"Volvo": {
		rule("EX90", `(?i)\bEX90\b`),
		rule("EX30", `(?i)\bEX30\b`),
		rule("XC40", `(?i)\bXC40\b`),
		rule("XC60", `(?i)\bXC60\b`),
		rule("XC90", `(?i)\bXC90\b`),
		rule("C40", `(?i)\bC40\b`),
	},
	"Polestar": {
		rule("Polestar 2", `(?i)\bPolestar\s*2\b`),
		rule("Polestar 3", `(?i)\bPolestar\s*3\b`),
		rule("Polestar 4", `(?i)\bPolestar\s*4\b`),
	},
	"BYD": {
		rule("Sealion 7", `(?i)\bSealion\s*7\b`),
		rule("Atto 3", `(?i)\bAtto\s*3\b`),
		rule("Seal", `(?i)\bSeal\b`),
		rule("Dolphin", `(?i)\bDolphin\b`),
		rule("Han", `(?i)\bHan\b`),
		rule("Tang", `(?i)\bTang\b`),
	},
	"NIO": {
		rule("ET5", `(?i)\bET5\b`),
		rule("ET7", `(?i)\bET7\b`),
		rule("ES6", `(?i)\bES6\b`),
		rule("ES8", `(?i)\bES8\b`),
		rule("EC6", `(?i)\bEC6\b`),
	},
	"XPeng": {
		rule("G9", `(?i)\bG9\b`),
		rule("G6", `(?i)\bG6\b`),
		rule("P7", `(?i)\bP7\b`),
	},
	"Li Auto": {
		rule("L9", `(?i)\bL9\b`),
		rule("L8", `(?i)\bL8\b`),
		rule("L7", `(?i)\bL7\b`),
		rule("L6", `(?i)\bL6\b`),
		rule("MEGA", `(?i)\bMEGA\b`),
	},
	"Zeekr": {
		rule("001", `\b001\b`),
		rule("009", `\b009\b`),
		rule("007", `\b007\b`),
		rule("X", `(?i)\bZeekr\s+X\b`),
	},
	"Lucid": {
		rule("Air", `(?i)\bAir\b`),
		rule("Gravity", `(?i)\bGravity\b`),
	},
	"Rivian": {
		rule("R1T", `(?i)\bR1T\b`),
		rule("R1S", `(?i)\bR1S\b`),
		rule("R2", `(?i)\bR2\b`),
	},
	"Jaguar": {
		rule("I-Pace", `(?i)\bI-?Pace\b`),
	},
	"Land Rover": {
		rule("Range Rover", `(?i)\bRange\s+Rover\b`),
		rule("Defender", `(?i)\bDefender\b`),
	},
	"Genesis": {
		rule("GV60", `(?i)\bGV60\b`),
		rule("GV70", `(?i)\bGV70\b`),
	},
}
