package formulario

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCandados_SerializaPorClaveYLibera(t *testing.T) {
	c := newCandados()
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		dentro    int
		maxDentro int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := c.lock("sesion-a")
			mu.Lock()
			dentro++
			if dentro > maxDentro {
				maxDentro = dentro
			}
			mu.Unlock()

			mu.Lock()
			dentro--
			mu.Unlock()
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxDentro, "nunca dos a la vez sobre la misma sesión")
	assert.Empty(t, c.porClave, "las entradas sin uso se liberan")
}

func TestCandados_ClavesDistintasNoSeBloquean(t *testing.T) {
	c := newCandados()
	unlockA := c.lock("a")
	unlockB := c.lock("b") // no debe bloquear
	assert.Len(t, c.porClave, 2)
	unlockB()
	unlockA()
	assert.Empty(t, c.porClave)
}
