package addon

import (
	"github.com/dbytex91/nasavideos/internal/nasa"
)

func WithID(id string) Option {
	return func(a *Addon) {
		a.id = id
	}
}

func WithName(name string) Option {
	return func(a *Addon) {
		a.name = name
	}
}

func WithVersion(version string) Option {
	return func(a *Addon) {
		a.version = version
	}
}

func WithNasaClient(client *nasa.Client) Option {
	return func(a *Addon) {
		a.nasaClient = client
	}
}

func WithRequestCache(cache *RequestCache) Option {
	return func(a *Addon) {
		a.requestCache = cache
	}
}
