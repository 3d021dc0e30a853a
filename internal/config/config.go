package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	StoreDriverFile     = "file"
	StoreDriverPostgres = "postgres"
	StoreDriverS3       = "s3"
)

type Config struct {
	App             App             `mapstructure:",squash"`
	Server          Server          `mapstructure:",squash"`
	Database        Database        `mapstructure:",squash"`
	Store           Store           `mapstructure:",squash"`
	Security        Security        `mapstructure:",squash"`
	Pipeline        Pipeline        `mapstructure:",squash"`
	ReferenceBackup ReferenceBackup `mapstructure:",squash"`
	Metrics         Metrics         `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	Env      string `mapstructure:"app_env"`
}

type Server struct {
	Host         string        `mapstructure:"host"`
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"server_read_timeout"`
	WriteTimeout time.Duration `mapstructure:"server_write_timeout"`
	// tamanho máximo do upload de planilhas, em MB
	MaxUploadMB int64 `mapstructure:"max_upload_mb"`
	// origens extras liberadas no CORS, separadas por vírgula
	CorsOrigins []string `mapstructure:"cors_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

// Store define onde a tabela de preços criptografada é guardada
type Store struct {
	Driver   string `mapstructure:"store_driver"`
	FilePath string `mapstructure:"store_file_path"`
	Table    string `mapstructure:"store_table"`
	Key      string `mapstructure:"store_key"`
	S3Bucket string `mapstructure:"store_s3_bucket"`
	S3Region string `mapstructure:"store_s3_region"`
	S3Object string `mapstructure:"store_s3_object"`
}

type Security struct {
	SecretKey string `mapstructure:"secret_key"`
	// senha de confirmação do upload da tabela de preços; aceita hash bcrypt ou texto
	UploadPassword string `mapstructure:"db_password"`
}

type Pipeline struct {
	SaleKindMarker    string `mapstructure:"sale_kind_marker"`
	AccountSaleMarker string `mapstructure:"account_sale_marker"`
	SalesSheet        string `mapstructure:"sales_sheet"`
}

type ReferenceBackup struct {
	CronSchedule string `mapstructure:"reference_backup_cron"`
	Dir          string `mapstructure:"reference_backup_dir"`
	Enabled      bool   `mapstructure:"reference_backup_enabled"`
}

type Metrics struct {
	Enabled bool   `mapstructure:"metrics_enabled"`
	Path    string `mapstructure:"metrics_path"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("SERVER_READ_TIMEOUT", "30s")
	viper.SetDefault("SERVER_WRITE_TIMEOUT", "60s")
	viper.SetDefault("MAX_UPLOAD_MB", 20)
	viper.SetDefault("CORS_ORIGINS", "")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/estoque?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("STORE_DRIVER", StoreDriverFile)
	viper.SetDefault("STORE_FILE_PATH", "db.json")
	viper.SetDefault("STORE_TABLE", "kv_store")
	viper.SetDefault("STORE_KEY", "reference_products")
	viper.SetDefault("STORE_S3_BUCKET", "")
	viper.SetDefault("STORE_S3_REGION", "us-east-1")
	viper.SetDefault("STORE_S3_OBJECT", "estoque/db.json")

	viper.SetDefault("SECRET_KEY", "your_secret_key")
	viper.SetDefault("DB_PASSWORD", "")

	viper.SetDefault("SALE_KIND_MARKER", "Venda")
	viper.SetDefault("ACCOUNT_SALE_MARKER", "CONTA")
	viper.SetDefault("SALES_SHEET", "")

	viper.SetDefault("REFERENCE_BACKUP_CRON", "0 2 * * *") // Todos os dias às 2h da manhã
	viper.SetDefault("REFERENCE_BACKUP_DIR", "backups")
	viper.SetDefault("REFERENCE_BACKUP_ENABLED", false)

	viper.SetDefault("METRICS_ENABLED", true)
	viper.SetDefault("METRICS_PATH", "/metrics")

	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Validate verifica combinações de configuração que impedem a inicialização
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreDriverFile:
		if c.Store.FilePath == "" {
			return fmt.Errorf("STORE_FILE_PATH é obrigatório para o driver %q", c.Store.Driver)
		}
	case StoreDriverPostgres:
		if c.Store.Table == "" || c.Store.Key == "" {
			return fmt.Errorf("STORE_TABLE e STORE_KEY são obrigatórios para o driver %q", c.Store.Driver)
		}
	case StoreDriverS3:
		if c.Store.S3Bucket == "" || c.Store.S3Object == "" {
			return fmt.Errorf("STORE_S3_BUCKET e STORE_S3_OBJECT são obrigatórios para o driver %q", c.Store.Driver)
		}
	default:
		return fmt.Errorf("STORE_DRIVER desconhecido: %q", c.Store.Driver)
	}

	if c.Security.SecretKey == "" {
		return fmt.Errorf("SECRET_KEY é obrigatório")
	}

	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Debug("Arquivo .env carregado de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando variáveis de ambiente")
}
