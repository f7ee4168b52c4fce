package password

import "golang.org/x/crypto/bcrypt"

// Cost factor bcrypt fijo. 12 resiste fuerza bruta offline razonablemente
// (~250ms por intento en hardware común); no bajar a DefaultCost.
const Cost = 12

// Hash aplica bcrypt al password en texto plano. El salt va embebido en el hash.
func Hash(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Verify compara un password en texto plano contra un hash bcrypt.
// Devuelve false ante mismatch o hash malformado; nunca retorna error.
func Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
