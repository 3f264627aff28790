package universe

// bist100 is the BIST 100 constituent list used for quick scans.
var bist100 = []string{
	"AEFES", "AGHOL", "AKBNK", "AKCNS", "AKFGY", "AKFYE", "AKSA", "AKSEN", "ALARK", "ALBRK",
	"ALFAS", "ARCLK", "ASELS", "ASTOR", "BERA", "BIENY", "BIMAS", "BIOEN", "BOBET", "BRSAN",
	"BRYAT", "BUCIM", "CANTE", "CCOLA", "CIMSA", "CWENE", "DOAS", "DOHOL", "ECILC", "ECZYT",
	"EGEEN", "EKGYO", "ENERY", "ENJSA", "ENKAI", "EREGL", "EUPWR", "EUREN", "FROTO", "GARAN",
	"GESAN", "GUBRF", "GWIND", "HALKB", "HEKTS", "IPEKE", "ISCTR", "ISDMR", "ISGYO", "ISMEN",
	"IZENR", "KAYSE", "KCAER", "KCHOL", "KONTR", "KONYA", "KORDS", "KOZAA", "KOZAL", "KRDMD",
	"KTLEV", "MAVI", "MGROS", "MIATK", "OBAMS", "ODAS", "OTKAR", "OYAKC", "PETKM", "PGSUS",
	"PSGYO", "QUAGR", "REEDR", "SAHOL", "SASA", "SDTTR", "SISE", "SKBNK", "SMRTG", "SOKM",
	"TABGD", "TAVHL", "TCELL", "THYAO", "TKFEN", "TMSN", "TOASO", "TSKB", "TTKOM", "TTRAK",
	"TUKAS", "TUPRS", "TURSG", "ULKER", "VAKBN", "VESBE", "VESTL", "YEOTK", "YKBNK", "ZOREN",
}

// bistExtra holds listed names outside the BIST 100, added for full scans.
var bistExtra = []string{
	"ADEL", "ADESE", "AFYON", "AGESA", "AHGAZ", "AKENR", "AKGRT", "AKMGY", "AKSGY", "AKYHO",
	"ALCAR", "ALCTL", "ALGYO", "ALKIM", "ALTNY", "ANELE", "ANHYT", "ANSGR", "ARDYZ", "ARSAN",
	"ASUZU", "ATAGY", "ATEKS", "AVGYO", "AVOD", "AYDEM", "AYEN", "AYGAZ", "BAGFS", "BAKAB",
	"BANVT", "BASGZ", "BFREN", "BIZIM", "BJKAS", "BNTAS", "BOSSA", "BRISA", "BRKSN", "BRKVY",
	"BRMEN", "BTCIM", "BURCE", "BURVA", "CELHA", "CEMAS", "CEMTS", "CLEBI", "CMBTN", "CMENT",
	"CRDFA", "CRFSA", "CVKMD", "DAGHL", "DARDL", "DERIM", "DESA", "DESPC", "DEVA", "DGATE",
	"DITAS", "DMSAS", "DOBUR", "DOGUB", "DOKTA", "DURDO", "DYOBY", "DZGYO", "EDIP", "EGGUB",
	"EGPRO", "EMKEL", "ENSRI", "ERBOS", "ERSU", "ESCOM", "FENER", "FMIZP", "FRIGO", "GEDZA",
	"GENIL", "GEREL", "GLYHO", "GOLTS", "GOODY", "GOZDE", "GSRAY", "HATEK", "HLGYO", "HTTBT",
	"HUNER", "IHLAS", "INDES", "ISFIN", "IZMDC", "JANTS", "KARSN", "KARTN", "KLKIM", "KLRHO",
	"KMPUR", "KRVGD", "LMKDC", "LOGO", "MPARK", "NETAS", "NTHOL", "NUHCM", "PARSN", "PENTA",
	"PRKAB", "PRKME", "RGYAS", "SELEC", "SNGYO", "SUNTK", "TATGD", "TRGYO", "TSPOR", "TUREX",
	"ULUUN", "VAKKO", "YATAS", "YUNSA", "ZRGYO",
}
