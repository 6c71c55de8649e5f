// Package platform models the outside services the game talks to: ads,
// in-app purchases, sharing and sign-in. Every call is fire-and-forget with
// success and failure callbacks; nothing is retried.
package platform

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tomz197/galactic/internal/loop/config"
)

var (
	ErrUnknownProduct = errors.New("unknown product")
	ErrNotSignedIn    = errors.New("not signed in")
)

// Product is a consumable score multiplier.
type Product struct {
	ID         string
	Multiplier int
}

// Title is the shop label, e.g. "Score x3".
func (p Product) Title() string {
	return fmt.Sprintf("Score x%d", p.Multiplier)
}

// ProductID returns the store id for a multiplier.
func ProductID(multiplier int) string {
	return "scorex" + strconv.Itoa(multiplier)
}

// Ads shows interstitial ads.
type Ads interface {
	ShowInterstitial(onDone func(), onFailure func(error))
}

// Purchases sells consumable products.
type Purchases interface {
	Products() []Product
	Buy(id string, onSuccess func(Product), onFailure func(error))
}

// Sharer publishes a short text, e.g. a score.
type Sharer interface {
	Share(text string, onSuccess func(), onFailure func(error))
}

// Auth signs the player in.
type Auth interface {
	SignIn(onSuccess func(name string), onFailure func(error))
}

// Services bundles the platform integrations of a session.
type Services struct {
	Ads       Ads
	Purchases Purchases
	Sharer    Sharer
	Auth      Auth
}

// NoAds completes every request immediately without showing anything.
type NoAds struct{}

func (NoAds) ShowInterstitial(onDone func(), _ func(error)) {
	call(onDone)
}

// Catalog grants purchases locally from a fixed product list.
type Catalog struct {
	products []Product
}

// NewCatalog offers one product per multiplier.
func NewCatalog(multipliers ...int) *Catalog {
	c := &Catalog{}
	for _, m := range multipliers {
		c.products = append(c.products, Product{ID: ProductID(m), Multiplier: m})
	}
	return c
}

// DefaultCatalog offers the standard shop multipliers.
func DefaultCatalog() *Catalog {
	return NewCatalog(config.ShopMultipliers...)
}

func (c *Catalog) Products() []Product {
	return append([]Product(nil), c.products...)
}

func (c *Catalog) Buy(id string, onSuccess func(Product), onFailure func(error)) {
	for _, p := range c.products {
		if p.ID == id {
			if onSuccess != nil {
				onSuccess(p)
			}
			return
		}
	}
	fail(onFailure, fmt.Errorf("%w: %q", ErrUnknownProduct, id))
}

// StaticAuth signs in as a fixed name, e.g. the OS or SSH user.
type StaticAuth struct {
	Name string
}

func (a StaticAuth) SignIn(onSuccess func(string), onFailure func(error)) {
	name := strings.TrimSpace(a.Name)
	if name == "" {
		fail(onFailure, ErrNotSignedIn)
		return
	}
	if onSuccess != nil {
		onSuccess(name)
	}
}

// Local returns services that work without any network.
func Local(user string, sharer Sharer) Services {
	return Services{
		Ads:       NoAds{},
		Purchases: DefaultCatalog(),
		Sharer:    sharer,
		Auth:      StaticAuth{Name: user},
	}
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}

func fail(fn func(error), err error) {
	if fn != nil {
		fn(err)
	}
}
