package planning

// Lead times de aprovisionamiento en días por grupo de categoría, heredados
// de la parametrización del ERP origen.
const defaultLeadTimeDays = 50

var leadTimeDaysByCategory = map[string]int{
	// Componentes
	"H": 45, "MI": 45, "OB": 45, "SM": 45,
	"LTM": 50, "SMT": 50, "TM": 50,
	"W": 55, "WC": 55, "WST": 55, "SMW": 55, "SM2": 55, "SM3": 55,
	"WC1": 55, "WC2": 55, "WC3": 55, "WS1": 55, "WS2": 55, "WS3": 55,
	// Arneses de cableado
	"BH": 60, "BS": 60, "BSO": 60, "DC": 60, "EK": 60, "HH": 60, "MH": 60,
	"MO": 60, "NC": 60, "NH": 60, "NMP": 60, "PSC": 60, "PW": 60, "SAM": 60,
	"WH": 60,
}

// LeadTimeDays devuelve el lead time en días para un código de categoría.
func LeadTimeDays(category string) int {
	if days, ok := leadTimeDaysByCategory[category]; ok {
		return days
	}
	return defaultLeadTimeDays
}
