package mediameta

import "strings"

type languageEntry struct {
	name  string
	code2 string
	code3 string
}

// languages resolves ISO 639-2 codes to lower-case English names. Both
// bibliographic and terminology codes appear where they differ.
var languages = []languageEntry{
	{"abkhazian", "ab", "abk"},
	{"afar", "aa", "aar"},
	{"afrikaans", "af", "afr"},
	{"akan", "ak", "aka"},
	{"albanian", "sq", "sqi"},
	{"amharic", "am", "amh"},
	{"arabic", "ar", "ara"},
	{"aragonese", "an", "arg"},
	{"armenian", "hy", "hye"},
	{"assamese", "as", "asm"},
	{"avaric", "av", "ava"},
	{"avestan", "ae", "ave"},
	{"aymara", "ay", "aym"},
	{"azerbaijani", "az", "aze"},
	{"bambara", "bm", "bam"},
	{"bashkir", "ba", "bak"},
	{"basque", "eu", "eus"},
	{"belarusian", "be", "bel"},
	{"bengali", "bn", "ben"},
	{"bihari languages", "bh", "bih"},
	{"bislama", "bi", "bis"},
	{"bosnian", "bs", "bos"},
	{"breton", "br", "bre"},
	{"bulgarian", "bg", "bul"},
	{"burmese", "my", "mya"},
	{"catalan", "ca", "cat"},
	{"chamorro", "ch", "cha"},
	{"chechen", "ce", "che"},
	{"chinese", "zh", "chi"},
	{"chinese", "zh", "zho"},
	{"church slavic", "cu", "chu"},
	{"chuvash", "cv", "chv"},
	{"cornish", "kw", "cor"},
	{"corsican", "co", "cos"},
	{"cree", "cr", "cre"},
	{"croatian", "hr", "hrv"},
	{"czech", "cs", "ces"},
	{"danish", "da", "dan"},
	{"dhivehi", "dv", "div"},
	{"dutch", "nl", "nld"},
	{"dzongkha", "dz", "dzo"},
	{"english", "en", "eng"},
	{"esperanto", "eo", "epo"},
	{"estonian, eesti keel", "et", "est"},
	{"ewe", "ee", "ewe"},
	{"faroese", "fo", "fao"},
	{"fijian", "fj", "fij"},
	{"finnish", "fi", "fin"},
	{"french", "fr", "fra"},
	{"fulah", "ff", "ful"},
	{"galician", "gl", "glg"},
	{"ganda", "lg", "lug"},
	{"georgian", "ka", "kat"},
	{"german", "de", "deu"},
	{"guarani", "gn", "grn"},
	{"gujarati", "gu", "guj"},
	{"haitian", "ht", "hat"},
	{"hausa", "ha", "hau"},
	{"hebrew", "he", "heb"},
	{"herero", "hz", "her"},
	{"hindi", "hi", "hin"},
	{"hiri motu", "ho", "hmo"},
	{"hungarian", "hu", "hun"},
	{"icelandic", "is", "ice"},
	{"icelandic", "is", "isl"},
	{"ido", "io", "ido"},
	{"igbo", "ig", "ibo"},
	{"indonesian", "id", "ind"},
	{"interlingua", "ia", "ina"},
	{"interlingue", "ie", "ile"},
	{"inuktitut", "iu", "iku"},
	{"inupiaq", "ik", "ipk"},
	{"irish", "ga", "gle"},
	{"italian", "it", "ita"},
	{"japanese", "ja", "jpn"},
	{"javanese", "jv", "jav"},
	{"kalaallisut", "kl", "kal"},
	{"kannada", "kn", "kan"},
	{"kanuri", "kr", "kau"},
	{"kashmiri", "ks", "kas"},
	{"kazakh", "kk", "kaz"},
	{"kentral khmer", "km", "khm"},
	{"kikuyu", "ki", "kik"},
	{"kinyarwanda", "rw", "kin"},
	{"kirghiz", "ky", "kir"},
	{"komi", "kv", "kom"},
	{"kongo", "kg", "kon"},
	{"korean", "ko", "kor"},
	{"kuanyama", "kj", "kua"},
	{"kurdish", "ku", "kur"},
	{"lao", "lo", "lao"},
	{"latin", "la", "lat"},
	{"latvian", "lv", "lav"},
	{"limburgan", "li", "lim"},
	{"lingala", "ln", "lin"},
	{"lithuanian", "lt", "lit"},
	{"luba-katanga", "lu", "lub"},
	{"luxembourgish", "lb", "ltz"},
	{"macedonian", "mk", "mkd"},
	{"malagasy", "mg", "mlg"},
	{"malay", "ms", "msa"},
	{"malayalam", "ml", "mal"},
	{"maltese", "mt", "mlt"},
	{"manx", "gv", "glv"},
	{"maori", "mi", "mri"},
	{"marathi", "mr", "mar"},
	{"marshallese", "mh", "mah"},
	{"modern greek", "el", "ell"},
	{"mongolian", "mn", "mon"},
	{"nauru", "na", "nau"},
	{"navajo", "nv", "nav"},
	{"ndonga", "ng", "ndo"},
	{"nepali", "ne", "nep"},
	{"norsk bokmål", "nb", "nob"},
	{"north ndebele", "nd", "nde"},
	{"northern sami", "se", "sme"},
	{"norwegian nynorsk", "nn", "nno"},
	{"norwegian", "no", "nor"},
	{"nyanja", "ny", "nya"},
	{"occitan", "oc", "oci"},
	{"ojibwa", "oj", "oji"},
	{"oriya", "or", "ori"},
	{"oromo", "om", "orm"},
	{"ossetian", "os", "oss"},
	{"pali", "pi", "pli"},
	{"panjabi", "pa", "pan"},
	{"persian", "fa", "fas"},
	{"polish", "pl", "pol"},
	{"portuguese", "pt", "por"},
	{"pushto", "ps", "pus"},
	{"quechua", "qu", "que"},
	{"romanian", "ro", "ron"},
	{"romansh", "rm", "roh"},
	{"rundi", "rn", "run"},
	{"russian", "ru", "rus"},
	{"samoan", "sm", "smo"},
	{"sango", "sg", "sag"},
	{"sanskrit", "sa", "san"},
	{"sardinian", "sd", "snd"},
	{"sardu", "sc", "srd"},
	{"scottish gaelic", "gd", "gla"},
	{"serbian", "sr", "srp"},
	{"shona", "sn", "sna"},
	{"sichuan yi", "ii", "iii"},
	{"sinhala", "si", "sin"},
	{"slovak", "sk", "slk"},
	{"slovenian", "sl", "slv"},
	{"somali", "so", "som"},
	{"south ndebele", "nr", "nbl"},
	{"southern sotho", "st", "sot"},
	{"spanish", "es", "spa"},
	{"sundanese", "su", "sun"},
	{"swahili", "sw", "swa"},
	{"swati", "ss", "ssw"},
	{"swedish", "sv", "swe"},
	{"tagalog", "tl", "tgl"},
	{"tahitian", "ty", "tah"},
	{"tajik", "tg", "tgk"},
	{"tamil", "ta", "tam"},
	{"tatar", "tt", "tat"},
	{"telugu", "te", "tel"},
	{"thai", "th", "tha"},
	{"tibetan", "bo", "bod"},
	{"tigrinya", "ti", "tir"},
	{"tonga", "to", "ton"},
	{"tsonga", "ts", "tso"},
	{"tswana", "tn", "tsn"},
	{"turkish", "tr", "tur"},
	{"turkmen", "tk", "tuk"},
	{"twi", "tw", "twi"},
	{"uighur", "ug", "uig"},
	{"ukrainian", "uk", "ukr"},
	{"urdu", "ur", "urd"},
	{"uzbek", "uz", "uzb"},
	{"venda", "ve", "ven"},
	{"vietnamese", "vi", "vie"},
	{"volapük", "vo", "vol"},
	{"walloon", "wa", "wln"},
	{"welsh", "cy", "cym"},
	{"western frisian", "fy", "fry"},
	{"wolof", "wo", "wol"},
	{"xhosa", "xh", "xho"},
	{"yiddish", "yi", "yid"},
	{"yoruba", "yo", "yor"},
	{"zhuang", "za", "zha"},
	{"zulu", "zu", "zul"},
}

var languagesByCode3 = func() map[string]string {
	m := make(map[string]string, len(languages))
	for _, entry := range languages {
		if _, ok := m[entry.code3]; !ok {
			m[entry.code3] = entry.name
		}
	}
	return m
}()

// LanguageFromCode3 returns the language name for a three-letter code,
// or full when the code is unknown.
func LanguageFromCode3(code3, full string) string {
	if name, ok := languagesByCode3[strings.ToLower(strings.TrimSpace(code3))]; ok {
		return name
	}
	return full
}

// PostTranslateCode3 rewrites terminology codes to the bibliographic
// aliases catalogues expect ("deu" becomes "ger"). The input is
// lower-cased either way.
func PostTranslateCode3(code string) string {
	code = strings.ToLower(code)
	if alias, ok := firstContained(code3Aliases, code); ok {
		return alias
	}
	return code
}

func PostTranslateLanguage(name string) string {
	name = strings.ToLower(name)
	if alias, ok := firstContained(languageAliases, name); ok {
		return alias
	}
	return name
}

// resolveLanguage turns the prober's three-letter code and full name into
// the stream's language code and name.
func resolveLanguage(code3, full string) (code, name string) {
	if code3 != "" {
		code = PostTranslateCode3(code3)
	}
	return code, PostTranslateLanguage(LanguageFromCode3(code3, full))
}
