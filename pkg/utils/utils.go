package utils

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Round2 округляет число до 2 знаков после запятой
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// IsFinite проверяет, является ли число конечным
func IsFinite(value float64) bool {
	return !math.IsInf(value, 0) && !math.IsNaN(value)
}

// FormatBRL форматирует сумму в бразильском формате: R$ 1.234,56
func FormatBRL(value float64) string {
	d := decimal.NewFromFloat(value).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return sign + "R$ " + groupDecimal(d.Abs().StringFixed(2))
}

// FormatPercent форматирует процент с запятой в качестве разделителя: 1,25%
func FormatPercent(value float64) string {
	d := decimal.NewFromFloat(value).Round(2)
	return strings.Replace(d.StringFixed(2), ".", ",", 1) + "%"
}

// groupDecimal превращает "1234567.89" в "1.234.567,89"
func groupDecimal(fixed string) string {
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, ch := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(ch)
	}
	if fracPart != "" {
		b.WriteByte(',')
		b.WriteString(fracPart)
	}
	return b.String()
}
