package util

import (
	"regexp"
	"testing"
)

func TestNovoProtocolo(t *testing.T) {
	re := regexp.MustCompile(`^\d{6}$`)
	for i := 0; i < 200; i++ {
		p, err := NovoProtocolo()
		if err != nil {
			t.Fatalf("protocolo: %v", err)
		}
		if !re.MatchString(p) {
			t.Fatalf("protocolo fora do formato: %q", p)
		}
		if p[0] == '0' {
			t.Fatalf("protocolo com zero à esquerda: %q", p)
		}
	}
}

func TestNovoTokenOpaco(t *testing.T) {
	vistos := map[string]bool{}
	for i := 0; i < 100; i++ {
		tok, err := NovoTokenOpaco()
		if err != nil {
			t.Fatalf("token: %v", err)
		}
		// 32 bytes em base64url sem padding
		if len(tok) != 43 {
			t.Fatalf("tamanho inesperado: %d (%q)", len(tok), tok)
		}
		if vistos[tok] {
			t.Fatalf("token repetido: %q", tok)
		}
		vistos[tok] = true
	}
}

func TestValidateEmail(t *testing.T) {
	if err := ValidateEmail("maria@condominio.test"); err != nil {
		t.Fatalf("email válido rejeitado: %v", err)
	}
	for _, email := range []string{"", "  ", "sem-arroba", "a@"} {
		if err := ValidateEmail(email); err == nil {
			t.Fatalf("email inválido aceito: %q", email)
		}
	}
}

func TestRequireString(t *testing.T) {
	if err := RequireString("ok", "campo"); err != nil {
		t.Fatalf("valor presente rejeitado: %v", err)
	}
	if err := RequireString("   ", "campo"); err == nil {
		t.Fatal("valor em branco aceito")
	}
}
