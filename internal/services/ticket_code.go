package services

import "math/rand/v2"

const (
	ticketDigits      = "0123456789"
	ticketLetters     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	maxTicketAttempts = 20
)

// GenerateTicketCode returns five random digits and one uppercase letter in shuffled
// order. A nil r uses the package-level source.
func GenerateTicketCode(r *rand.Rand) string {
	intN := rand.IntN
	if r != nil {
		intN = r.IntN
	}
	code := make([]byte, 6)
	for i := 0; i < 5; i++ {
		code[i] = ticketDigits[intN(len(ticketDigits))]
	}
	code[5] = ticketLetters[intN(len(ticketLetters))]
	for i := len(code) - 1; i > 0; i-- {
		j := intN(i + 1)
		code[i], code[j] = code[j], code[i]
	}
	return string(code)
}
