package payment

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
)

const currencyCHF = "CHF"

// PostFinanceSigner computes the SHA-IN signature of the e-payment form.
type PostFinanceSigner struct {
	pspID  string
	secret string
}

func NewPostFinanceSigner(pspID, secret string) *PostFinanceSigner {
	return &PostFinanceSigner{
		pspID:  pspID,
		secret: secret,
	}
}

func (s *PostFinanceSigner) Sign(_ context.Context, req SignRequest) (string, error) {
	params := map[string]string{
		"ALIAS":    req.Alias,
		"AMOUNT":   strconv.Itoa(req.Amount),
		"CURRENCY": currencyCHF,
		"ORDERID":  req.OrderID,
		"PSPID":    s.pspID,
		"USERID":   req.UserID,
	}
	return s.shaSign(params), nil
}

// shaSign joins KEY=value+secret for every non-empty parameter in
// alphabetical key order and hashes the result with SHA-512.
func (s *PostFinanceSigner) shaSign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for key, value := range params {
		if value == "" {
			continue
		}
		keys = append(keys, strings.ToUpper(key))
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString("=")
		b.WriteString(params[key])
		b.WriteString(s.secret)
	}

	sum := sha512.Sum512([]byte(b.String()))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}
