// Package format renders amounts as short labels for tables and charts.
package format

import (
	"fmt"
	"math"
	"strings"
)

// Amount returns a whole-unit amount with thousands separators (e.g., "-1,234,568").
func Amount(amount float64) string {
	return signed(amount, groupThousands(fmt.Sprintf("%.0f", math.Abs(amount))))
}

// Decimal returns an amount with two decimals and thousands separators (e.g., "-1,234.56").
func Decimal(amount float64) string {
	parts := strings.SplitN(fmt.Sprintf("%.2f", math.Abs(amount)), ".", 2)
	decPart := "00"
	if len(parts) == 2 {
		decPart = parts[1]
	}
	return signed(amount, groupThousands(parts[0])+"."+decPart)
}

// Millions returns the amount expressed in millions with two decimals (e.g., "7.25M").
func Millions(amount float64) string {
	return signed(amount, fmt.Sprintf("%.2fM", math.Abs(amount)/1e6))
}

// Percent renders a fraction as a whole percent (0.4321 -> "43%").
func Percent(fraction float64) string {
	return fmt.Sprintf("%.0f%%", fraction*100)
}

func signed(amount float64, formatted string) string {
	if amount < 0 && strings.Trim(formatted, "0.,M") != "" {
		return "-" + formatted
	}
	return formatted
}

func groupThousands(intPart string) string {
	if len(intPart) <= 3 {
		return intPart
	}
	var builder strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			builder.WriteByte(',')
		}
		builder.WriteRune(digit)
	}
	return builder.String()
}
