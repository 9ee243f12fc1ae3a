package util

import (
	"crypto/rand"
	"encoding/base64"
	"math/big"
)

// NovoTokenOpaco gera token aleatório seguro em base64url (32 bytes).
// Usado para os tokens de chat e compartilhamento, que funcionam como
// credenciais portadoras.
func NovoTokenOpaco() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// NovoProtocolo gera código numérico de 6 dígitos para exibição.
// Não há garantia de unicidade; colisões são toleradas.
func NovoProtocolo() (string, error) {
	max := big.NewInt(900000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	digits := n.Int64() + 100000
	return formatProtocolo(digits), nil
}

func formatProtocolo(n int64) string {
	buf := [6]byte{}
	for i := 5; i >= 0; i-- {
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[:])
}
