package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/JanTran/movie-api/internal/db"
	"github.com/JanTran/movie-api/internal/models"
)

const userColumns = `id, username, email, password_hash, birthday, favorite_movies, created_at, updated_at`

// PostgresUserRepository provides PostgreSQL-backed persistence for users.
type PostgresUserRepository struct {
	pool db.Pool
}

// NewPostgresUserRepository constructs a user repository backed by PostgreSQL.
func NewPostgresUserRepository(pool db.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// Create persists a new user record. Username uniqueness is enforced by the
// schema; a duplicate maps to ErrConflict.
func (r *PostgresUserRepository) Create(ctx context.Context, user models.User) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	favorites := user.FavoriteMovies
	if favorites == nil {
		favorites = []string{}
	}

	_, err = conn.Exec(ctx, `
        INSERT INTO users (id, username, email, password_hash, birthday, favorite_movies, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `, user.ID, user.Username, user.Email, user.PasswordHash, user.Birthday, favorites, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrConflict
		}
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

// FindByUsername fetches a user by their exact, case-sensitive username.
func (r *PostgresUserRepository) FindByUsername(ctx context.Context, username string) (models.User, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.User{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	row := conn.QueryRow(ctx, `
        SELECT `+userColumns+`
        FROM users
        WHERE username = $1
    `, username)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("select user by username: %w", err)
	}

	return user, nil
}

// Update applies the provided field changes in a single statement and returns
// the resulting record.
func (r *PostgresUserRepository) Update(ctx context.Context, username string, update UserUpdate) (models.User, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.User{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	sets := []string{"updated_at = $2"}
	args := []any{username, time.Now().UTC()}

	appendSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Username != nil {
		appendSet("username", *update.Username)
	}
	if update.Email != nil {
		appendSet("email", *update.Email)
	}
	if update.PasswordHash != nil {
		appendSet("password_hash", *update.PasswordHash)
	}
	if update.Birthday != nil {
		appendSet("birthday", *update.Birthday)
	}

	query := "UPDATE users SET "
	for i, set := range sets {
		if i > 0 {
			query += ", "
		}
		query += set
	}
	query += " WHERE username = $1 RETURNING " + userColumns

	user, err := scanUser(conn.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.User{}, ErrConflict
		}
		return models.User{}, fmt.Errorf("update user: %w", err)
	}

	return user, nil
}

// Delete removes a user record entirely.
func (r *PostgresUserRepository) Delete(ctx context.Context, username string) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `
        DELETE FROM users
        WHERE username = $1
    `, username)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// AddFavorite inserts movieID into the user's favorites set in one atomic
// statement. Adding an identifier that is already present is a no-op.
func (r *PostgresUserRepository) AddFavorite(ctx context.Context, username, movieID string) (models.User, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.User{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	row := conn.QueryRow(ctx, `
        UPDATE users
        SET favorite_movies = CASE
                WHEN $2 = ANY(favorite_movies) THEN favorite_movies
                ELSE array_append(favorite_movies, $2)
            END,
            updated_at = $3
        WHERE username = $1
        RETURNING `+userColumns+`
    `, username, movieID, time.Now().UTC())

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("add favorite: %w", err)
	}

	return user, nil
}

// RemoveFavorite removes movieID from the user's favorites set in one atomic
// statement. Removing an absent identifier is a no-op.
func (r *PostgresUserRepository) RemoveFavorite(ctx context.Context, username, movieID string) (models.User, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.User{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	row := conn.QueryRow(ctx, `
        UPDATE users
        SET favorite_movies = array_remove(favorite_movies, $2),
            updated_at = $3
        WHERE username = $1
        RETURNING `+userColumns+`
    `, username, movieID, time.Now().UTC())

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("remove favorite: %w", err)
	}

	return user, nil
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Birthday,
		&user.FavoriteMovies,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

const movieColumns = `id, title, description, genre_name, genre_description,
        director_name, director_bio, director_birth, director_death,
        image_path, poster_url, poster_status, featured, created_at`

// PostgresMovieRepository provides PostgreSQL-backed persistence for the
// movie catalog.
type PostgresMovieRepository struct {
	pool db.Pool
}

// NewPostgresMovieRepository constructs a movie repository backed by PostgreSQL.
func NewPostgresMovieRepository(pool db.Pool) *PostgresMovieRepository {
	return &PostgresMovieRepository{pool: pool}
}

// List returns the full catalog ordered by title.
func (r *PostgresMovieRepository) List(ctx context.Context) ([]models.Movie, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `
        SELECT `+movieColumns+`
        FROM movies
        ORDER BY title
    `)
	if err != nil {
		return nil, fmt.Errorf("query movies: %w", err)
	}
	defer rows.Close()

	var movies []models.Movie
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, movie)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movies: %w", err)
	}

	return movies, nil
}

// FindByTitle fetches a single catalog entry by its exact title.
func (r *PostgresMovieRepository) FindByTitle(ctx context.Context, title string) (models.Movie, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.Movie{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	row := conn.QueryRow(ctx, `
        SELECT `+movieColumns+`
        FROM movies
        WHERE title = $1
    `, title)

	movie, err := scanMovie(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Movie{}, ErrNotFound
		}
		return models.Movie{}, fmt.Errorf("select movie by title: %w", err)
	}

	return movie, nil
}

// FindGenre returns the description of a genre by name.
func (r *PostgresMovieRepository) FindGenre(ctx context.Context, name string) (models.Genre, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.Genre{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	row := conn.QueryRow(ctx, `
        SELECT genre_name, genre_description
        FROM movies
        WHERE genre_name = $1
        LIMIT 1
    `, name)

	var genre models.Genre
	if err := row.Scan(&genre.Name, &genre.Description); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Genre{}, ErrNotFound
		}
		return models.Genre{}, fmt.Errorf("select genre: %w", err)
	}

	return genre, nil
}

// FindDirector returns director details by name.
func (r *PostgresMovieRepository) FindDirector(ctx context.Context, name string) (models.Director, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.Director{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	row := conn.QueryRow(ctx, `
        SELECT director_name, director_bio, director_birth, director_death
        FROM movies
        WHERE director_name = $1
        LIMIT 1
    `, name)

	var director models.Director
	if err := row.Scan(&director.Name, &director.Bio, &director.Birth, &director.Death); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Director{}, ErrNotFound
		}
		return models.Director{}, fmt.Errorf("select director: %w", err)
	}

	return director, nil
}

// ListPendingPosters returns catalog entries whose poster has not been
// ingested yet.
func (r *PostgresMovieRepository) ListPendingPosters(ctx context.Context) ([]models.Movie, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `
        SELECT `+movieColumns+`
        FROM movies
        WHERE poster_status = $1 AND image_path <> ''
        ORDER BY title
    `, models.PosterStatusPending)
	if err != nil {
		return nil, fmt.Errorf("query pending posters: %w", err)
	}
	defer rows.Close()

	var movies []models.Movie
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pending poster: %w", err)
		}
		movies = append(movies, movie)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pending posters: %w", err)
	}

	return movies, nil
}

// MarkPosterReady records the stored location after a successful ingestion.
func (r *PostgresMovieRepository) MarkPosterReady(ctx context.Context, movieID, location string) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `
        UPDATE movies
        SET poster_status = $2,
            poster_url = $3
        WHERE id = $1
    `, movieID, models.PosterStatusReady, location)
	if err != nil {
		return fmt.Errorf("update poster status ready: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// MarkPosterFailed records a failed ingestion attempt for the movie.
func (r *PostgresMovieRepository) MarkPosterFailed(ctx context.Context, movieID string) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `
        UPDATE movies
        SET poster_status = $2,
            poster_url = ''
        WHERE id = $1
    `, movieID, models.PosterStatusFailed)
	if err != nil {
		return fmt.Errorf("update poster status failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func scanMovie(row pgx.Row) (models.Movie, error) {
	var movie models.Movie
	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.Description,
		&movie.Genre.Name,
		&movie.Genre.Description,
		&movie.Director.Name,
		&movie.Director.Bio,
		&movie.Director.Birth,
		&movie.Director.Death,
		&movie.ImagePath,
		&movie.PosterURL,
		&movie.PosterStatus,
		&movie.Featured,
		&movie.CreatedAt,
	)
	if err != nil {
		return models.Movie{}, err
	}
	return movie, nil
}

var _ UserRepository = (*PostgresUserRepository)(nil)
var _ MovieRepository = (*PostgresMovieRepository)(nil)
var _ PosterUpdater = (*PostgresMovieRepository)(nil)
