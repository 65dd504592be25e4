// Package translate localises the user visible messages of the Intcode tools.
package translate

import (
	"log"
	"sync"
	"sync/atomic"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	printer atomic.Pointer[message.Printer]
	once    sync.Once
)

// setup selects the message printer for the user's preferred locales.
func setup() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("intcode: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	printer.CompareAndSwap(nil, message.NewPrinter(message.MatchLanguage(locales...)))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	once.Do(setup)
	return printer.Load().Sprintf(key, args...)
}

// Use forces a specific language, replacing the locale derived printer.
// Mostly useful for tests that compare message text.
func Use(tag language.Tag) {
	once.Do(setup)
	printer.Store(message.NewPrinter(tag))
}
