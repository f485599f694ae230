package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite" // sqlite driver
)

// PopulationSchema creates the countries and cities tables.
const PopulationSchema = `
CREATE TABLE countries (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	population INTEGER,
	area_km2 REAL,
	gdp_usd REAL,
	continent TEXT
);
CREATE TABLE cities (
	id INTEGER PRIMARY KEY,
	country_id INTEGER,
	name TEXT NOT NULL,
	population INTEGER,
	is_capital BOOLEAN,
	latitude REAL,
	longitude REAL,
	FOREIGN KEY (country_id) REFERENCES countries(id)
);
`

// PopulationData fills the tables created by PopulationSchema.
const PopulationData = `
INSERT INTO countries VALUES
	(1, 'China', 1439323776, 9596961, 14342903, 'Asia'),
	(2, 'India', 1380004385, 3287263, 2875142, 'Asia'),
	(3, 'United States', 331002651, 9833517, 21433226, 'North America'),
	(4, 'Indonesia', 273523615, 1904569, 1058424, 'Asia'),
	(5, 'Pakistan', 220892340, 881913, 278222, 'Asia'),
	(6, 'Brazil', 212559417, 8515770, 1839758, 'South America'),
	(7, 'Nigeria', 206139589, 923768, 448120, 'Africa'),
	(8, 'Bangladesh', 164689383, 147570, 302571, 'Asia'),
	(9, 'Russia', 145912025, 17098246, 1699877, 'Europe'),
	(10, 'Mexico', 128932753, 1964375, 1212831, 'North America');
INSERT INTO cities VALUES
	(1, 1, 'Beijing', 20462610, 1, 39.9042, 116.4074),
	(2, 1, 'Shanghai', 27058480, 0, 31.2304, 121.4737),
	(3, 2, 'New Delhi', 32941000, 1, 28.6139, 77.2090),
	(4, 2, 'Mumbai', 20667656, 0, 19.0760, 72.8777),
	(5, 3, 'Washington DC', 705749, 1, 38.9072, -77.0369),
	(6, 3, 'New York', 8336817, 0, 40.7128, -74.0060),
	(7, 4, 'Jakarta', 10562088, 1, -6.2088, 106.8456),
	(8, 5, 'Islamabad', 1095064, 1, 33.6844, 73.0479),
	(9, 6, 'Brasília', 3055149, 1, -15.7975, -47.8919),
	(10, 7, 'Abuja', 1235880, 1, 9.0765, 7.3986);
`

// CreatePopulationDB writes the population fixture to dir/name and returns its path.
func CreatePopulationDB(t testing.TB, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open fixture database: %v", err)
	}
	defer func() { _ = db.Close() }()

	ctx := context.Background()
	for _, stmt := range []string{PopulationSchema, PopulationData} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			t.Fatalf("failed to build fixture database: %v", err)
		}
	}
	return path
}
