package common

type bankName struct {
	Eng string
	Mon string
}

// Bank codes as issued by the switching center. Payment-service providers
// (Toki, Simple, ...) use alphabetic codes instead of the numeric prefix.
var banks = map[string]bankName{
	"100000": {"Test bank", "Тэст банк"},
	"010000": {"Bank of mongolia", "Монгол банк"},
	"020000": {"Capital bank", "Капитал банк"},
	"040000": {"TDB", "ХХБ"},
	"050000": {"Khanbank", "Хаан банк"},
	"150000": {"Golomt bank", "Голомт банк"},
	"190000": {"Trans bank", "Тээвэр хөгжлийн банк"},
	"210000": {"Arig bank", "Ариг банк"},
	"220000": {"Credit bank", "Кредит банк"},
	"260000": {"UBCity bank", "УБХотын банк"},
	"290000": {"NIB bank", "ҮХО банк"},
	"300000": {"Capitron bank", "Капитрон банк"},
	"320000": {"Xac bank", "Хас банк"},
	"330000": {"Chingisskhan bank", "Чингисхаан банк"},
	"340000": {"State bank", "Төрийн банк"},
	"360000": {"National development bank", "Хөгжлийн банк"},
	"380000": {"Bogd bank", "Богд банк"},
	"390000": {"M bank", "М банк"},
	"500000": {"Mobifinance", "Мобифинанс"},
	"510000": {"Hi Pay", "Hi Pay"},
	"520000": {"Ard Credit", "Ард Кредит"},
	"550000": {"Databank", "Databank"},
	"900000": {"State fund", "Төрийн сан"},
	"990000": {"Mobifinance", "Мобифинанс"},
	"992000": {"Rentracks", "Рэнтракс"},
	"993000": {"Invcore", "Инвескор"},
	"994000": {"Superup", "Супер ап"},
	"995000": {"MChat", "М Чат"},
	"TOKI":   {"Toki", "Токи"},
	"SIMPLE": {"Simple", "Симпл"},
	"SKYPAY": {"Skypay", "Скайпэй"},
	"TOKTOK": {"Tok Tok", "Ток Ток"},
}

// BankName returns the display name for a bank code in the given language
// code ("ENG" or "MON"). The second return value reports whether the code
// is known.
func BankName(code, langCode string) (string, bool) {
	b, ok := banks[code]
	if !ok {
		return "", false
	}
	if langCode == "ENG" {
		return b.Eng, true
	}
	return b.Mon, true
}

// KnownBankCodes lists every recognized bank code. The order is not
// stable between calls.
func KnownBankCodes() []string {
	codes := make([]string, 0, len(banks))
	for code := range banks {
		codes = append(codes, code)
	}
	return codes
}
