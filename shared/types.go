package shared

type ServerConfig struct {
	Sqlite      SqliteConfig      `mapstructure:"sqlite" validate:"required"`
	Safespeak   SafespeakConfig   `mapstructure:"safespeak" validate:"required"`
	Fcm         FcmConfig         `mapstructure:"fcm"`
	Twilio      TwilioConfig      `mapstructure:"twilio"`
	Ses         SesConfig         `mapstructure:"ses"`
	Google      GoogleConfig      `mapstructure:"google"`
	Perspective PerspectiveConfig `mapstructure:"perspective"`
}

type SqliteConfig struct {
	PassPhrase string `mapstructure:"passPhrase" validate:"required"`
}

type SafespeakConfig struct {
	PrivateKeyPem string         `mapstructure:"privateKeyPem" validate:"required"`
	Cron          CronConfig     `mapstructure:"cron" validate:"required"`
	Listener      ListenerConfig `mapstructure:"listener" validate:"required"`
}

type CronConfig struct {
	TimeZone string `mapstructure:"timeZone" validate:"required"`
}

type ListenerConfig struct {
	Port int `mapstructure:"port" validate:"required"`
}

type FcmConfig struct {
	ServerKey string `mapstructure:"serverKey"`
}

type TwilioConfig struct {
	AccountSid          string `mapstructure:"accountSid"`
	AuthToken           string `mapstructure:"authToken"`
	MessagingServiceSid string `mapstructure:"messagingServiceSid"`
}

type SesConfig struct {
	Region string `mapstructure:"region"`
	Sender string `mapstructure:"sender" validate:"omitempty,email"`
}

type GoogleConfig struct {
	ApplicationCredentials string        `mapstructure:"applicationCredentials"`
	Storage                StorageConfig `mapstructure:"storage"`
}

type StorageConfig struct {
	Bucket                    string `mapstructure:"bucket" validate:"required_with=EnableSqliteBackupAndSync"`
	Prefix                    string `mapstructure:"prefix"`
	SqliteBackupSchedule      string `mapstructure:"sqliteBackupSchedule" validate:"required_with=EnableSqliteBackupAndSync"`
	EnableSqliteBackupAndSync bool   `mapstructure:"enableSqliteBackupAndSync"`
}

type PerspectiveConfig struct {
	ApiKey string `mapstructure:"apiKey"`
}
