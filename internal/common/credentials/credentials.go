package credentials

import (
	"os"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

// ServiceAccount is the identity the job runs as, read from a Google service account key file.
// Only the fields the job relies on are checked; the whole file is handed to the client libraries.
type ServiceAccount struct {
	Type        string `json:"type" validate:"eq=service_account"`
	ProjectId   string `json:"project_id" validate:"required"`
	ClientEmail string `json:"client_email" validate:"required,email"`
	PrivateKey  string `json:"private_key" validate:"required"`
	raw         []byte
}

// Load reads and checks the key file at path.
func Load(path string) (*ServiceAccount, error) {
	if path == "" {
		return nil, errors.New("no credentials file configured")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading credentials file %s", path)
	}
	return Parse(raw)
}

// Parse checks raw is a usable service account key.
func Parse(raw []byte) (*ServiceAccount, error) {
	sa := &ServiceAccount{}
	if err := jsoniter.Unmarshal(raw, sa); err != nil {
		return nil, errors.Wrap(err, "malformed credentials")
	}
	if err := validator.New().Struct(sa); err != nil {
		return nil, errors.Wrap(err, "invalid credentials")
	}
	sa.raw = raw
	return sa, nil
}

// ClientOptions authenticates Google API clients as this service account.
func (sa *ServiceAccount) ClientOptions() []option.ClientOption {
	return []option.ClientOption{option.WithCredentialsJSON(sa.raw)}
}
