package config

const (
	// AppName is the name of the application.
	AppName = "yakuza"

	// EnvBotToken is the environment variable for the bot token.
	EnvBotToken = `BOT_TOKEN`

	// EnvApplicationId is the environment variable for the application ID.
	EnvApplicationId = `APPLICATION_ID`

	// EnvPrefix is the environment variable for the legacy command prefix.
	EnvPrefix = `PREFIX`

	// EnvConfigFile is the environment variable for the guild configuration file.
	EnvConfigFile = `CONFIG_FILE`

	// EnvMongoUri is the environment variable for the MongoDB URI.
	EnvMongoUri = `MONGO_URI`

	// EnvMongoDatabase is the environment variable for the MongoDB database.
	EnvMongoDatabase = `MONGO_DATABASE`

	// EnvMonitoringPort is the environment variable for the monitoring port.
	EnvMonitoringPort = `MONITORING_PORT`

	// EnvTimezone is the environment variable for the timezone timestamps are shown in.
	EnvTimezone = `TIMEZONE`

	// EnvCommandRate is the environment variable for the commands per second a user may run.
	EnvCommandRate = `COMMAND_RATE`

	// EnvCommandBurst is the environment variable for the command burst a user may run.
	EnvCommandBurst = `COMMAND_BURST`
)

// Config is the bot configuration.
type Config struct {
	// BotToken is the token for the bot.
	BotToken string `env:"BOT_TOKEN,required,notEmpty,unset"`

	// ApplicationId is the ID of the application. Defaults to the bot user's ID once connected.
	ApplicationId string `env:"APPLICATION_ID"`

	// Prefix is the prefix of legacy text commands.
	Prefix string `env:"PREFIX" envDefault:"!"`

	// ConfigFile is the JSON file guild configuration is kept in.
	ConfigFile string `env:"CONFIG_FILE" envDefault:"server_configs.json"`

	// MongoUri switches guild configuration to MongoDB when set.
	MongoUri string `env:"MONGO_URI,unset"`

	// MongoDatabase is the MongoDB database.
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"yakuza"`

	// MonitoringPort is the port for the monitoring server.
	MonitoringPort string `env:"MONITORING_PORT" envDefault:"8080"`

	// Timezone is the IANA timezone timestamps are shown in.
	Timezone string `env:"TIMEZONE" envDefault:"America/Sao_Paulo"`

	// CommandRate is the commands per second a user may run.
	CommandRate float64 `env:"COMMAND_RATE" envDefault:"1"`

	// CommandBurst is the number of commands a user may run at once.
	CommandBurst int `env:"COMMAND_BURST" envDefault:"3"`
}
