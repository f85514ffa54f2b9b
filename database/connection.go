package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

var DB *sql.DB

func InitDB() error {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	var psqlInfo string

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL != "" {
		psqlInfo = databaseURL
	} else {
		host := os.Getenv("DB_HOST")
		portstr := os.Getenv("DB_PORT")
		port, err := strconv.Atoi(portstr)
		if err != nil {
			return fmt.Errorf("invalid DB_PORT, must be a number: %w", err)
		}
		user := os.Getenv("DB_USER")
		password := os.Getenv("DB_PASSWORD")
		dbname := os.Getenv("DB_NAME")
		sslmode := os.Getenv("DB_SSLMODE")

		if sslmode == "" {
			sslmode = "disable"
		}

		psqlInfo = fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			host, port, user, password, dbname, sslmode)
	}

	var err error
	DB, err = sql.Open("postgres", psqlInfo)
	if err != nil {
		return fmt.Errorf("error opening database: %w", err)
	}

	DB.SetMaxOpenConns(25)
	DB.SetMaxIdleConns(5)

	if err = DB.Ping(); err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}

	log.Println("Successfully connected to database")

	if err := runMigrations(); err != nil {
		return fmt.Errorf("error running migrations: %w", err)
	}

	return nil
}

func CloseDB() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

func runMigrations() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS collectors (
			id SERIAL PRIMARY KEY,
			name VARCHAR(120) NOT NULL,
			email VARCHAR(120) UNIQUE NOT NULL,
			cpf BIGINT,
			password_hash VARCHAR(255) NOT NULL,
			accepting_collections BOOLEAN DEFAULT false,
			rating DOUBLE PRECISION,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS donors (
			id SERIAL PRIMARY KEY,
			name VARCHAR(120) NOT NULL,
			email VARCHAR(120) UNIQUE NOT NULL,
			cpf BIGINT,
			password_hash VARCHAR(255) NOT NULL,
			delivery_completed BOOLEAN DEFAULT false,
			rating DOUBLE PRECISION,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS waste_items (
			id SERIAL PRIMARY KEY,
			collector_id INTEGER REFERENCES collectors(id),
			donor_id INTEGER NOT NULL REFERENCES donors(id),
			material_type VARCHAR(30) NOT NULL,
			weight DOUBLE PRECISION NOT NULL,
			unit VARCHAR(10),
			quantity INTEGER,
			latitude DOUBLE PRECISION NOT NULL,
			longitude DOUBLE PRECISION NOT NULL,
			delivered BOOLEAN DEFAULT false,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS history_entries (
			id SERIAL PRIMARY KEY,
			collector_id INTEGER REFERENCES collectors(id),
			donor_id INTEGER REFERENCES donors(id),
			was_collection BOOLEAN NOT NULL DEFAULT false,
			was_donation BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS deliveries (
			id SERIAL PRIMARY KEY,
			name VARCHAR(120) NOT NULL,
			start_location VARCHAR(120),
			end_location VARCHAR(120),
			collector_id INTEGER REFERENCES collectors(id),
			donor_id INTEGER REFERENCES donors(id),
			note VARCHAR(120),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS notifications (
			id SERIAL PRIMARY KEY,
			donor_id INTEGER REFERENCES donors(id),
			collector_id INTEGER REFERENCES collectors(id),
			message VARCHAR(255) NOT NULL,
			seen BOOLEAN DEFAULT false,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS messages (
			id SERIAL PRIMARY KEY,
			sender_id INTEGER NOT NULL,
			recipient_id INTEGER NOT NULL,
			text VARCHAR(500) NOT NULL,
			sent_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_waste_items_unclaimed
			ON waste_items (id) WHERE collector_id IS NULL`,
		`CREATE INDEX IF NOT EXISTS idx_messages_pair
			ON messages (sender_id, recipient_id, sent_at)`,
	}

	for _, migration := range migrations {
		if _, err := DB.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	log.Println("Database migrations completed")
	return nil
}
