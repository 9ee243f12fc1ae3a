package auth

import "github.com/alexedwards/argon2id"

// Parâmetros de custo do Argon2id. Ficam embutidos no próprio hash,
// então podem ser endurecidos sem invalidar senhas antigas.
var hashParams = &argon2id.Params{
	Memory:      64 * 1024, // KiB
	Iterations:  3,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

// Hash deriva o hash Argon2id da senha em texto claro.
func Hash(password string) (string, error) {
	return argon2id.CreateHash(password, hashParams)
}

// Verify confere a senha contra um hash armazenado, usando os
// parâmetros codificados no hash.
func Verify(password, encodedHash string) (bool, error) {
	return argon2id.ComparePasswordAndHash(password, encodedHash)
}
