package formulario

import "sync"

// candados mutex por ID de sesión; la entrada se libera cuando nadie la usa.
type candados struct {
	mu       sync.Mutex
	porClave map[string]*candado
}

type candado struct {
	mu   sync.Mutex
	refs int
}

func newCandados() *candados {
	return &candados{porClave: make(map[string]*candado)}
}

// lock toma el mutex de la clave y devuelve la función que lo suelta.
func (c *candados) lock(clave string) func() {
	c.mu.Lock()
	k, ok := c.porClave[clave]
	if !ok {
		k = &candado{}
		c.porClave[clave] = k
	}
	k.refs++
	c.mu.Unlock()

	k.mu.Lock()
	return func() {
		k.mu.Unlock()
		c.mu.Lock()
		k.refs--
		if k.refs == 0 {
			delete(c.porClave, clave)
		}
		c.mu.Unlock()
	}
}

