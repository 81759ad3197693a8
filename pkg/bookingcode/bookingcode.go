// Package bookingcode генерация кодов записей вида RES-0A1B2C3D
package bookingcode

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	// Prefix префикс кода записи
	Prefix = "RES-"

	// HexLength количество шестнадцатеричных символов после префикса
	HexLength = 8
)

// New генерирует случайный код; уникальность проверяет вызывающий
func New() (string, error) {
	buf := make([]byte, HexLength/2)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("bookingcode: read random: %w", err)
	}
	return Prefix + strings.ToUpper(hex.EncodeToString(buf)), nil
}

// Valid проверяет формат кода
func Valid(code string) bool {
	if !strings.HasPrefix(code, Prefix) || len(code) != len(Prefix)+HexLength {
		return false
	}
	for _, c := range code[len(Prefix):] {
		if !(c >= '0' && c <= '9') && !(c >= 'A' && c <= 'F') {
			return false
		}
	}
	return true
}
