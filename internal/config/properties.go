package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/iwvelando/amortize/pkg/constants"
	"github.com/iwvelando/amortize/pkg/mathutil"
	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Properties is an immutable string-keyed property store. Values come from
// key=value tokens, falling back to AMORTIZE_<KEY> environment variables.
type Properties struct {
	v *viper.Viper
}

// NewProperties builds a property store from key=value tokens. Tokens without
// '=', with an empty key or with a key that is not all lowercase are ignored,
// and the first occurrence of a key wins.
func NewProperties(tokens []string) *Properties {
	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.AutomaticEnv()

	seen := make(map[string]bool)
	for _, token := range tokens {
		key, value, found := strings.Cut(token, "=")
		// Keys are case sensitive but viper folds case, so only lowercase
		// keys are stored.
		if !found || key == "" || key != strings.ToLower(key) || seen[key] {
			continue
		}
		seen[key] = true
		v.Set(key, value)
	}

	return &Properties{v: v}
}

// ReadPropertiesFile loads whitespace-separated key=value tokens from a file.
func ReadPropertiesFile(path string) (*Properties, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open properties file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	tokens, err := ScanTokens(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read properties file %s: %w", path, err)
	}
	return NewProperties(tokens), nil
}

// ScanTokens splits r into whitespace-separated tokens.
func ScanTokens(r io.Reader) ([]string, error) {
	var tokens []string
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		tokens = append(tokens, scanner.Text())
	}
	return tokens, scanner.Err()
}

// LoadEnvFile loads a dotenv file into the process environment so that
// AMORTIZE_<KEY> variables defined there become visible to Properties.
// Variables already set in the environment are not overridden.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// Lookup returns the raw value for key and whether it was supplied.
func (p *Properties) Lookup(key string) (string, bool) {
	if !p.v.IsSet(key) {
		return "", false
	}
	return p.v.GetString(key), true
}

// Get returns the value for key, or def when it was not supplied.
func (p *Properties) Get(key, def string) string {
	if value, ok := p.Lookup(key); ok {
		return value
	}
	return def
}

// Float64 returns the value for key parsed as a number and whether it was
// supplied.
func (p *Properties) Float64(key string) (float64, bool, error) {
	raw, ok := p.Lookup(key)
	if !ok {
		return 0, false, nil
	}
	value, err := cast.ToFloat64E(strings.TrimSpace(raw))
	if err != nil {
		return 0, true, fmt.Errorf("property %s=%q is not a number: %w", key, raw, err)
	}
	if !mathutil.IsFinite(value) {
		return 0, true, fmt.Errorf("property %s=%q is not a finite number", key, raw)
	}
	return value, true, nil
}

// Int returns the value for key parsed as a whole number and whether it was
// supplied. Integral decimals such as "360.0" are accepted.
func (p *Properties) Int(key string) (int, bool, error) {
	value, ok, err := p.Float64(key)
	if err != nil || !ok {
		return 0, ok, err
	}
	whole := cast.ToInt(value)
	if float64(whole) != value {
		return 0, true, fmt.Errorf("property %s=%v is not a whole number", key, value)
	}
	return whole, true, nil
}

// Keys returns the keys supplied through tokens.
func (p *Properties) Keys() []string {
	return p.v.AllKeys()
}
