package stack

import (
	"fmt"
	"strings"

	"github.com/jellydator/validation"
	"github.com/k0sproject/dig"
)

// Schema kinds understood by the schema loading step.
const (
	SchemaNone    = ""
	SchemaMongoDB = "mongodb"
	SchemaMySQL   = "mysql"
)

// Service describes one deployable role of the shop: either a packaged
// datastore managed through the distribution or an application service
// built from a downloaded artifact and run under systemd.
type Service struct {
	Name         string            `yaml:"name"`
	Description  string            `yaml:"description,omitempty"`
	Packages     []string          `yaml:"packages,omitempty"`
	User         string            `yaml:"user,omitempty"`
	Home         string            `yaml:"home,omitempty"`
	Unit         string            `yaml:"unit,omitempty"`
	UnitTemplate string            `yaml:"unitTemplate,omitempty"`
	HasArtifact  bool              `yaml:"artifact,omitempty"`
	Build        string            `yaml:"build,omitempty"`
	SchemaKind   string            `yaml:"schema,omitempty"`
	SchemaFile   string            `yaml:"schemaFile,omitempty"`
	Environment  map[string]string `yaml:"environment,flow,omitempty"`
	Config       dig.Mapping       `yaml:"config,omitempty"`
}

// Validate performs a sanity check on the service definition
func (s Service) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Name, validation.Required),
		validation.Field(&s.SchemaKind, validation.In(SchemaNone, SchemaMongoDB, SchemaMySQL)),
	)
}

// EndpointVar returns the environment variable name other services use to
// reach this one, for example CATALOGUE_HOST for "catalogue".
func (s Service) EndpointVar() string {
	return strings.ToUpper(strings.ReplaceAll(s.Name, "-", "_")) + "_HOST"
}

// ArtifactName returns the name of the downloadable artifact for the service
func (s Service) ArtifactName() string {
	return s.Name + ".zip"
}

// Services is a collection of service definitions
type Services []*Service

// Find returns the service with the given name or nil
func (s Services) Find(name string) *Service {
	for _, svc := range s {
		if svc.Name == name {
			return svc
		}
	}
	return nil
}

// Names returns the service names in catalog order
func (s Services) Names() []string {
	names := make([]string, 0, len(s))
	for _, svc := range s {
		names = append(names, svc.Name)
	}
	return names
}

// Validate checks all services and rejects duplicate names
func (s Services) Validate() error {
	seen := make(map[string]bool)
	for _, svc := range s {
		if seen[svc.Name] {
			return fmt.Errorf("duplicate service definition %q", svc.Name)
		}
		seen[svc.Name] = true
		if err := svc.Validate(); err != nil {
			return fmt.Errorf("service %q: %w", svc.Name, err)
		}
	}
	return nil
}

// UnmarshalYAML merges user supplied service definitions over the built-in
// catalog: a listed service overrides the default with the same name, an
// unknown name adds a new service.
func (s *Services) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var overrides []*Service
	if err := unmarshal(&overrides); err != nil {
		return err
	}

	merged := DefaultServices()
	for _, o := range overrides {
		if idx := merged.index(o.Name); idx >= 0 {
			merged[idx] = o
		} else {
			merged = append(merged, o)
		}
	}
	*s = merged

	return nil
}

func (s Services) index(name string) int {
	for i, svc := range s {
		if svc.Name == name {
			return i
		}
	}
	return -1
}

const nodeUnitTemplate = `[Unit]
Description=${SERVICE_DESCRIPTION}
After=network-online.target
Wants=network-online.target

[Service]
User=${SERVICE_USER}
WorkingDirectory=${SERVICE_HOME}
Environment=MONGO=true
Environment=MONGO_URL=mongodb://${MONGODB_HOST}:27017/${SERVICE_NAME}
Environment=REDIS_HOST=${REDIS_HOST}
Environment=MONGO_DB_HOST=${MONGODB_HOST}
Environment=CATALOGUE_HOST=${CATALOGUE_HOST}
Environment=CATALOGUE_PORT=8080
ExecStart=/bin/node ${SERVICE_HOME}/server.js
SyslogIdentifier=${SERVICE_NAME}
Restart=always
RestartSec=5

[Install]
WantedBy=multi-user.target
`

const javaUnitTemplate = `[Unit]
Description=${SERVICE_DESCRIPTION}
After=network-online.target
Wants=network-online.target

[Service]
User=${SERVICE_USER}
WorkingDirectory=${SERVICE_HOME}
Environment=CART_ENDPOINT=${CART_HOST}:8080
Environment=DB_HOST=${MYSQL_HOST}
ExecStart=/bin/java -jar ${SERVICE_HOME}/shipping.jar
SyslogIdentifier=${SERVICE_NAME}
Restart=always
RestartSec=5

[Install]
WantedBy=multi-user.target
`

const pythonUnitTemplate = `[Unit]
Description=${SERVICE_DESCRIPTION}
After=network-online.target
Wants=network-online.target

[Service]
User=${SERVICE_USER}
WorkingDirectory=${SERVICE_HOME}
Environment=CART_HOST=${CART_HOST}
Environment=CART_PORT=8080
Environment=USER_HOST=${USER_HOST}
Environment=USER_PORT=8080
Environment=AMQP_HOST=${RABBITMQ_HOST}
Environment=AMQP_USER=roboshop
Environment=AMQP_PASS=roboshop123
ExecStart=/usr/local/bin/uwsgi --ini payment.ini
SyslogIdentifier=${SERVICE_NAME}
Restart=always
RestartSec=5

[Install]
WantedBy=multi-user.target
`

const golangUnitTemplate = `[Unit]
Description=${SERVICE_DESCRIPTION}
After=network-online.target
Wants=network-online.target

[Service]
User=${SERVICE_USER}
WorkingDirectory=${SERVICE_HOME}
Environment=AMQP_HOST=${RABBITMQ_HOST}
Environment=AMQP_USER=roboshop
Environment=AMQP_PASS=roboshop123
ExecStart=${SERVICE_HOME}/dispatch
SyslogIdentifier=${SERVICE_NAME}
Restart=always
RestartSec=5

[Install]
WantedBy=multi-user.target
`

// DefaultServices returns the built-in roboshop service catalog
func DefaultServices() Services {
	return Services{
		{
			Name:        "mongodb",
			Description: "MongoDB document store",
			Packages:    []string{"mongodb-org"},
			Unit:        "mongod",
		},
		{
			Name:        "mysql",
			Description: "MySQL relational database",
			Packages:    []string{"mysql-server"},
			Unit:        "mysqld",
		},
		{
			Name:        "redis",
			Description: "Redis cache",
			Packages:    []string{"redis"},
			Unit:        "redis",
		},
		{
			Name:        "rabbitmq",
			Description: "RabbitMQ message broker",
			Packages:    []string{"rabbitmq-server"},
			Unit:        "rabbitmq-server",
		},
		{
			Name:        "web",
			Description: "Roboshop web frontend",
			Packages:    []string{"nginx"},
			Unit:        "nginx",
			Home:        "/usr/share/nginx/html",
			HasArtifact: true,
		},
		{
			Name:         "catalogue",
			Description:  "Roboshop catalogue service",
			Packages:     []string{"nodejs", "mongodb-org-shell"},
			User:         "roboshop",
			Home:         "/app/catalogue",
			Unit:         "catalogue",
			UnitTemplate: nodeUnitTemplate,
			HasArtifact:  true,
			Build:        "npm install",
			SchemaKind:   SchemaMongoDB,
			SchemaFile:   "schema/catalogue.js",
		},
		{
			Name:         "user",
			Description:  "Roboshop user service",
			Packages:     []string{"nodejs", "mongodb-org-shell"},
			User:         "roboshop",
			Home:         "/app/user",
			Unit:         "user",
			UnitTemplate: nodeUnitTemplate,
			HasArtifact:  true,
			Build:        "npm install",
			SchemaKind:   SchemaMongoDB,
			SchemaFile:   "schema/user.js",
		},
		{
			Name:         "cart",
			Description:  "Roboshop cart service",
			Packages:     []string{"nodejs"},
			User:         "roboshop",
			Home:         "/app/cart",
			Unit:         "cart",
			UnitTemplate: nodeUnitTemplate,
			HasArtifact:  true,
			Build:        "npm install",
		},
		{
			Name:         "shipping",
			Description:  "Roboshop shipping service",
			Packages:     []string{"maven", "mysql"},
			User:         "roboshop",
			Home:         "/app/shipping",
			Unit:         "shipping",
			UnitTemplate: javaUnitTemplate,
			HasArtifact:  true,
			Build:        "mvn clean package && mv target/shipping-1.0.jar shipping.jar",
			SchemaKind:   SchemaMySQL,
			SchemaFile:   "schema/shipping.sql",
		},
		{
			Name:         "payment",
			Description:  "Roboshop payment service",
			Packages:     []string{"python3", "gcc", "python3-devel"},
			User:         "roboshop",
			Home:         "/app/payment",
			Unit:         "payment",
			UnitTemplate: pythonUnitTemplate,
			HasArtifact:  true,
			Build:        "pip3 install -r requirements.txt",
		},
		{
			Name:         "dispatch",
			Description:  "Roboshop dispatch service",
			Packages:     []string{"golang"},
			User:         "roboshop",
			Home:         "/app/dispatch",
			Unit:         "dispatch",
			UnitTemplate: golangUnitTemplate,
			HasArtifact:  true,
			Build:        "go mod init dispatch && go get && go build",
		},
	}
}
