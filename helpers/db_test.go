package helpers

import (
	"testing"

	"github.com/lib/pq"
)

func TestDSN(t *testing.T) {
	c := DBConfig{
		Host:     "localhost",
		Port:     5432,
		Database: "ens",
		Username: "ens",
		Password: "secret",
	}

	expected := "user='ens' dbname='ens' host='localhost' port=5432 password='secret' sslmode='disable'"
	if c.DSN() != expected {
		t.Errorf("DSN() = %q should be %q", c.DSN(), expected)
	}

	c.SSLMode = "require"
	expected = "user='ens' dbname='ens' host='localhost' port=5432 password='secret' sslmode='require'"
	if c.DSN() != expected {
		t.Errorf("DSN() = %q should be %q", c.DSN(), expected)
	}
}

func TestDSNEmptyPassword(t *testing.T) {
	c := DBConfig{
		Host:     "localhost",
		Port:     5432,
		Database: "ens",
		Username: "ens",
	}

	expected := "user='ens' dbname='ens' host='localhost' port=5432 password='' sslmode='disable'"
	if c.DSN() != expected {
		t.Errorf("DSN() = %q should be %q", c.DSN(), expected)
	}

	if _, err := pq.NewConnector(c.DSN()); err != nil {
		t.Errorf("pq rejected DSN %q: %v", c.DSN(), err)
	}
}

func TestDSNEscaping(t *testing.T) {
	c := DBConfig{
		Host:     "localhost",
		Port:     5432,
		Database: "ens",
		Username: "ens",
		Password: `it's a \secret`,
	}

	expected := `user='ens' dbname='ens' host='localhost' port=5432 password='it\'s a \\secret' sslmode='disable'`
	if c.DSN() != expected {
		t.Errorf("DSN() = %q should be %q", c.DSN(), expected)
	}

	if _, err := pq.NewConnector(c.DSN()); err != nil {
		t.Errorf("pq rejected DSN %q: %v", c.DSN(), err)
	}
}
