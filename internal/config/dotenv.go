package config

import (
	"sync"

	"github.com/joho/godotenv"
)

// dotEnv loads env files into the process environment at most once
type dotEnv struct {
	once  sync.Once
	files []string
	err   error
}

func (d *dotEnv) load() error {
	d.once.Do(func() {
		d.err = godotenv.Load(d.files...)
	})
	return d.err
}

var defaultDotEnv = &dotEnv{}

// LoadDotEnv loads .env into the environment. Only the first call reads the
// file; later calls return the same result. Variables already set are kept.
func LoadDotEnv() error {
	return defaultDotEnv.load()
}
