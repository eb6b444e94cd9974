package input

// ServerConfig represents the button-feed configuration.
type ServerConfig struct {
	Addr string `help:"Button input feed listen address" default:":3241" env:"DECKFORGE_INPUT_ADDR"`
}
