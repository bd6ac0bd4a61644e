package translation

import (
	"regexp"
	"strings"
)

// TextType is the detected register of an Arabic source text.
type TextType string

const (
	TextTypeClassical TextType = "classical"
	TextTypeReligious TextType = "religious"
	TextTypeLiterary  TextType = "literary"
	TextTypeTechnical TextType = "technical"
	TextTypeModern    TextType = "modern"
)

// Classification is the arg-max register with a confidence derived from the
// normalized gap between the top two scores.
type Classification struct {
	TextType   TextType `json:"textType"`
	Confidence float64  `json:"confidence"`
	Scores     map[TextType]float64
}

const (
	patternWeight = 3.0
	keywordWeight = 1.0
)

// registerIndicators is one register's lexical profile. Patterns are phrase
// regexps and weigh more than single keywords.
type registerIndicators struct {
	textType TextType
	patterns []*regexp.Regexp
	keywords []string
}

var registers = []registerIndicators{
	{
		textType: TextTypeReligious,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`قال (تعالى|الله|رسول الله)`),
			regexp.MustCompile(`صلى الله عليه وسلم`),
			regexp.MustCompile(`رضي الله عنه?م?ا?`),
			regexp.MustCompile(`بسم الله الرحمن الرحيم`),
			regexp.MustCompile(`عز وجل`),
		},
		keywords: []string{
			"الله", "القرآن", "سورة", "آية", "الحديث", "السنة",
			"الصلاة", "الزكاة", "الحج", "الإيمان", "الجنة", "النار",
			"سبحانه", "تعالى", "النبي", "الرسول",
		},
	},
	{
		textType: TextTypeClassical,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`أما بعد`),
			regexp.MustCompile(`حدثن(ا|ي)`),
			regexp.MustCompile(`أخبرن(ا|ي)`),
			regexp.MustCompile(`يا أيها`),
			regexp.MustCompile(`واعلم أن`),
			regexp.MustCompile(`قال المؤلف`),
		},
		keywords: []string{
			"فإن", "إنما", "لعل", "كأن", "ليت", "إذ", "قد",
			"الباب", "الفصل", "المسألة", "القول", "الوجه",
			"زعم", "روى", "ذكر", "بلغنا",
		},
	},
	{
		textType: TextTypeLiterary,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`قال الشاعر`),
			regexp.MustCompile(`بيت من الشعر`),
			regexp.MustCompile(`على لسان`),
		},
		keywords: []string{
			"قصيدة", "شعر", "ديوان", "غزل", "رثاء", "مدح",
			"خيال", "عاطفة", "مجاز", "استعارة", "قافية", "بحر",
			"رواية", "قصة", "بطل",
		},
	},
	{
		textType: TextTypeTechnical,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`نظام التشغيل`),
			regexp.MustCompile(`قاعدة البيانات`),
			regexp.MustCompile(`الذكاء الاصطناعي`),
		},
		keywords: []string{
			"برنامج", "تقنية", "جهاز", "بيانات", "شبكة", "تطبيق",
			"خوارزمية", "معالج", "رقمي", "برمجة", "حاسوب", "خادم",
			"ملف", "إعدادات",
		},
	},
	{
		textType: TextTypeModern,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`وسائل التواصل الاجتماعي`),
			regexp.MustCompile(`وكالة الأنباء`),
		},
		keywords: []string{
			"اليوم", "الآن", "سيارة", "هاتف", "تلفزيون", "إنترنت",
			"أخبار", "حكومة", "اقتصاد", "رئيس", "وزير", "مدينة",
			"شركة", "مشروع", "عالمي",
		},
	},
}

// ClassifyArabicText scores the text against each register's indicator set
// and picks the best match. The classifier is lexical and deterministic; an
// empty or indicator-free text falls back to the modern register with zero
// confidence.
func ClassifyArabicText(text string) Classification {
	scores := make(map[TextType]float64, len(registers))

	for _, reg := range registers {
		var score float64
		for _, pattern := range reg.patterns {
			score += float64(len(pattern.FindAllStringIndex(text, -1))) * patternWeight
		}
		for _, keyword := range reg.keywords {
			score += float64(strings.Count(text, keyword)) * keywordWeight
		}
		scores[reg.textType] = score
	}

	best := TextTypeModern
	var top, second float64
	for _, reg := range registers {
		score := scores[reg.textType]
		if score > top {
			second = top
			top = score
			best = reg.textType
		} else if score > second {
			second = score
		}
	}

	if top == 0 {
		return Classification{TextType: TextTypeModern, Confidence: 0, Scores: scores}
	}

	return Classification{
		TextType:   best,
		Confidence: (top - second) / top,
		Scores:     scores,
	}
}

// IsClassicalRegister reports whether the register calls for the classical
// Arabic prompt.
func IsClassicalRegister(t TextType) bool {
	switch t {
	case TextTypeClassical, TextTypeReligious, TextTypeLiterary:
		return true
	default:
		return false
	}
}
