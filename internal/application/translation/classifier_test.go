package translation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyArabicText_Religious(t *testing.T) {
	text := "بسم الله الرحمن الرحيم قال تعالى في سورة البقرة والحديث عن النبي صلى الله عليه وسلم"

	result := ClassifyArabicText(text)

	assert.Equal(t, TextTypeReligious, result.TextType)
	assert.Greater(t, result.Confidence, 0.0)
	assert.Greater(t, result.Scores[TextTypeReligious], result.Scores[TextTypeModern])
}

func TestClassifyArabicText_Classical(t *testing.T) {
	text := "أما بعد فقد حدثنا أبو بكر وأخبرنا الشيخ في الباب الأول من الفصل الثاني، واعلم أن المسألة فيها أقوال"

	result := ClassifyArabicText(text)

	assert.Equal(t, TextTypeClassical, result.TextType)
	assert.Greater(t, result.Confidence, 0.0)
}

func TestClassifyArabicText_Technical(t *testing.T) {
	text := "يعمل البرنامج على معالجة البيانات عبر الشبكة باستخدام خوارزمية مخصصة ويخزن النتائج في قاعدة البيانات"

	result := ClassifyArabicText(text)

	assert.Equal(t, TextTypeTechnical, result.TextType)
}

func TestClassifyArabicText_NoIndicators(t *testing.T) {
	result := ClassifyArabicText("نص قصير")

	assert.Equal(t, TextTypeModern, result.TextType)
	assert.Equal(t, 0.0, result.Confidence)
}

func TestClassifyArabicText_Deterministic(t *testing.T) {
	text := "قال تعالى في القرآن الكريم"
	first := ClassifyArabicText(text)
	second := ClassifyArabicText(text)

	assert.Equal(t, first.TextType, second.TextType)
	assert.Equal(t, first.Confidence, second.Confidence)
}

func TestIsClassicalRegister(t *testing.T) {
	assert.True(t, IsClassicalRegister(TextTypeClassical))
	assert.True(t, IsClassicalRegister(TextTypeReligious))
	assert.True(t, IsClassicalRegister(TextTypeLiterary))
	assert.False(t, IsClassicalRegister(TextTypeTechnical))
	assert.False(t, IsClassicalRegister(TextTypeModern))
	assert.False(t, IsClassicalRegister(TextType("")))
}

func TestLanguageName(t *testing.T) {
	assert.Equal(t, "Arabic", LanguageName("ara"))
	assert.Equal(t, "Arabic", LanguageName("ar"))
	assert.Equal(t, "French", LanguageName("FRA"))
	assert.Equal(t, "xx", LanguageName("xx"))
}

func TestIsArabic(t *testing.T) {
	assert.True(t, IsArabic("ar"))
	assert.True(t, IsArabic("ara"))
	assert.True(t, IsArabic("ARA"))
	assert.False(t, IsArabic("eng"))
}
