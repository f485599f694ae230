package mssql

import (
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/leapstack-labs/docsql/pkg/core"
)

// DefaultDriver is the ODBC driver named when the config leaves driver unset.
const DefaultDriver = "ODBC Driver 18 for SQL Server"

const maskedPassword = "***"

// Param is one key=value pair of a connection descriptor.
type Param struct {
	Key   string
	Value string
}

// Descriptor is the ordered parameter set describing a SQL Server connection.
// Credentials are already resolved from the environment.
type Descriptor struct {
	Params []Param
}

// NewDescriptor builds the descriptor for cfg.
//
// Trusted connections omit Uid and Pwd. Encrypt and TrustServerCertificate
// are rendered yes/no only when set, and Port only when non-zero.
func NewDescriptor(cfg core.DataSourceConfig) Descriptor {
	driver := cfg.Driver
	if driver == "" {
		driver = DefaultDriver
	}

	d := Descriptor{}
	d.add("Driver", driver)
	d.add("Server", cfg.Server)
	d.add("Database", cfg.Database)

	if cfg.Trusted() {
		d.add("Trusted_Connection", "yes")
	} else {
		if cfg.Username != "" {
			d.add("Uid", core.ResolveCredential(cfg.Username))
		}
		d.add("Pwd", core.ResolveCredential(cfg.Password))
	}

	if cfg.Encrypt != nil {
		d.add("Encrypt", yesNo(*cfg.Encrypt))
	}
	if cfg.TrustServerCertificate != nil {
		d.add("TrustServerCertificate", yesNo(*cfg.TrustServerCertificate))
	}
	if cfg.Port != 0 {
		d.add("Port", strconv.Itoa(cfg.Port))
	}
	return d
}

func (d *Descriptor) add(key, value string) {
	d.Params = append(d.Params, Param{Key: key, Value: value})
}

// Get returns the value for key and whether it is present.
func (d Descriptor) Get(key string) (string, bool) {
	for _, p := range d.Params {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// String renders the semicolon-joined descriptor. It includes the password.
func (d Descriptor) String() string {
	return d.render(false)
}

// Masked renders the descriptor with the password replaced by ***.
func (d Descriptor) Masked() string {
	return d.render(true)
}

func (d Descriptor) render(mask bool) string {
	parts := make([]string, 0, len(d.Params))
	for _, p := range d.Params {
		v := p.Value
		if mask && p.Key == "Pwd" {
			v = maskedPassword
		}
		parts = append(parts, p.Key+"="+v)
	}
	return strings.Join(parts, ";")
}

// URL translates the descriptor into a go-mssqldb sqlserver:// URL.
// A named instance in Server (host\instance) becomes the URL path.
// Driver has no go-mssqldb equivalent and is not carried over.
func (d Descriptor) URL() *url.URL {
	server, _ := d.Get("Server")
	host, instance, _ := strings.Cut(server, `\`)
	if port, ok := d.Get("Port"); ok {
		host = net.JoinHostPort(host, port)
	}

	u := &url.URL{Scheme: "sqlserver", Host: host}
	if instance != "" {
		u.Path = "/" + instance
	}

	if _, trusted := d.Get("Trusted_Connection"); !trusted {
		user, _ := d.Get("Uid")
		pwd, _ := d.Get("Pwd")
		if user != "" {
			u.User = url.UserPassword(user, pwd)
		}
	}

	q := url.Values{}
	if db, ok := d.Get("Database"); ok {
		q.Set("database", db)
	}
	if enc, ok := d.Get("Encrypt"); ok {
		q.Set("encrypt", enc)
	}
	if tsc, ok := d.Get("TrustServerCertificate"); ok {
		q.Set("TrustServerCertificate", strconv.FormatBool(tsc == "yes"))
	}
	u.RawQuery = q.Encode()
	return u
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
