package translate

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	Use(language.AmericanEnglish)

	assert.Equal("ip 4: opcode 98", From("ip %d: opcode %d", 4, 98))
	assert.Equal("1,234,567", From("%d", 1234567))
	assert.Equal("plain", From("plain"))
}

func TestUseConcurrent(t *testing.T) {
	assert := assert.New(t)

	var wg sync.WaitGroup
	for n := range 8 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if n%2 == 0 {
				Use(language.AmericanEnglish)
			} else {
				Use(language.BritishEnglish)
			}
		}()
		go func() {
			defer wg.Done()
			From("stage %d", n)
		}()
	}
	wg.Wait()

	Use(language.AmericanEnglish)
	assert.Equal("stage 3", From("stage %d", 3))
}
