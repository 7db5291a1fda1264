package messages

// User facing strings shared across the bot. The community is Brazilian, so these are in Portuguese.
const (
	// ErrUserErrorProcessing is shown when a command fails in a way the user cannot fix.
	ErrUserErrorProcessing = "Deu ruim aqui. Não consegui processar o seu comando, tenta de novo daqui a pouco."

	// ErrTitle is the title of generic error embeds.
	ErrTitle = "Erro"

	// RateLimited is shown when a user sends commands too quickly.
	RateLimited = "Calma aí! Você está usando comandos rápido demais, espera uns segundos."

	// GuildOnly is shown when a guild command is used in a direct message.
	GuildOnly = "Esse comando só funciona dentro de um servidor."
)
