package interkassa

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

// signedFields lists the notification fields covered by ik_sign_hash, in signing order.
// The secret key is appended after them.
var signedFields = []string{
	FieldShopID,
	FieldPaymentAmount,
	FieldPaymentID,
	FieldPaysystemAlias,
	FieldBaggage,
	FieldState,
	FieldTransID,
	FieldCurrencyExch,
	FieldFeesPayer,
}

// Signature computes the ik_sign_hash Interkassa sends with status notifications:
// the upper-case hex MD5 of the signed fields and the secret key joined by colons.
// Missing fields count as empty strings. MD5 is dictated by the gateway protocol.
func Signature(fields map[string]string, secretKey string) string {
	parts := make([]string, 0, len(signedFields)+1)
	for _, name := range signedFields {
		parts = append(parts, fields[name])
	}
	parts = append(parts, secretKey)

	hash := md5.Sum([]byte(strings.Join(parts, ":")))
	return strings.ToUpper(hex.EncodeToString(hash[:]))
}

// VerifySignature reports whether signature matches the fields signed with secretKey
func VerifySignature(fields map[string]string, secretKey, signature string) bool {
	expected := Signature(fields, secretKey)
	received := strings.ToUpper(signature)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(received)) == 1
}
