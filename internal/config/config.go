package config

import (
	"errors"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Server      struct {
		Port            string `env:"PORT" envDefault:"3000"`
		ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"15"`
		IdleTimeout     int    `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
	} `envPrefix:"SERVER_"`
	Database struct {
		DSN                string `env:"DSN,required"`
		ConnectTimeout     int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		QueryTimeout       int    `env:"QUERY_TIMEOUT" envDefault:"10"`
		TransactionTimeout int    `env:"TRANSACTION_TIMEOUT" envDefault:"20"`
		MaxOpenConns       int    `env:"MAX_OPEN_CONNS" envDefault:"10"`
		MaxIdleConns       int    `env:"MAX_IDLE_CONNS" envDefault:"10"`
		MaxIdleTime        int    `env:"MAX_IDLE_TIME" envDefault:"60"`
	} `envPrefix:"DATABASE_"`
	InitialAdmin struct {
		Username    string `env:"USERNAME" envDefault:"admin"`
		Password    string `env:"PASSWORD,required"`
		FullName    string `env:"FULL_NAME" envDefault:"Administrador"`
		Email       string `env:"EMAIL,required"`
		FranchiseID string `env:"FRANCHISE_ID" envDefault:"franquicia-demo"`
	} `envPrefix:"INITIAL_ADMIN_"`
	JWT struct {
		Expiration int    `env:"EXPIRATION" envDefault:"1209600"` // 14 dias
		Secret     string `env:"SECRET,required"`
	} `envPrefix:"JWT_"`
	Seed struct {
		User struct {
			Password string `env:"PASSWORD,required"`
		} `envPrefix:"USER_"`
	} `envPrefix:"SEED_"`
	Email struct {
		From string `env:"FROM,required"`
		SMTP struct {
			Username    string `env:"USERNAME,required"`
			Password    string `env:"PASSWORD,required"`
			Host        string `env:"HOST,required"`
			Port        int    `env:"PORT" envDefault:"465"`
			DialTimeout int    `env:"DIAL_TIMEOUT" envDefault:"10"`
		} `envPrefix:"SMTP_"`
	} `envPrefix:"EMAIL_"`
	RabbitMQ struct {
		DSN            string `env:"DSN,required"`
		PublishTimeout int    `env:"PUBLISH_TIMEOUT" envDefault:"10"`
	} `envPrefix:"RABBITMQ_"`
	Redis struct {
		Host           string `env:"HOST" envDefault:"localhost"`
		Port           int    `env:"PORT" envDefault:"6379"`
		Password       string `env:"PASSWORD,required"`
		ConnectTimeout int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
	} `envPrefix:"REDIS_"`
	Audit struct {
		SlackHours         float64 `env:"SLACK_HOURS" envDefault:"5"`
		CoverageFloorHours float64 `env:"COVERAGE_FLOOR_HOURS" envDefault:"100"`
		OvertimePenalty    int     `env:"OVERTIME_PENALTY" envDefault:"5"`
		UnderusePenalty    int     `env:"UNDERUSE_PENALTY" envDefault:"2"`
		OptimalThreshold   int     `env:"OPTIMAL_THRESHOLD" envDefault:"90"`
		WarningThreshold   int     `env:"WARNING_THRESHOLD" envDefault:"70"`
		CostPerHour        float64 `env:"COST_PER_HOUR" envDefault:"12"`
		SocialSecurityPct  float64 `env:"SOCIAL_SECURITY_PCT" envDefault:"0.30"`
		CoveragePenalty    int     `env:"COVERAGE_PENALTY" envDefault:"15"`
		MinRidersPerDay    int     `env:"MIN_RIDERS_PER_DAY" envDefault:"4"`
	} `envPrefix:"AUDIT_"`
	QuickFill struct {
		LunchStart  int `env:"LUNCH_START" envDefault:"12"`
		LunchEnd    int `env:"LUNCH_END" envDefault:"16"`
		DinnerStart int `env:"DINNER_START" envDefault:"20"`
		DinnerEnd   int `env:"DINNER_END" envDefault:"24"`
	} `envPrefix:"QUICK_FILL_"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok {
			// only surface the first error to keep logs readable
			return nil, aggErr.Errors[0]
		}
	}

	return cfg, nil
}
