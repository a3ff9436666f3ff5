package httpserver

import (
	"net/http"
	"strconv"

	"cinelog/errs"
	"cinelog/movie"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterMovieRoutes(g *echo.Group) {
	g.GET("/movies", s.handleListMovies)
	g.POST("/movies", s.handleSaveMovie)
	g.GET("/movies/:id", s.handleGetMovie)
	g.DELETE("/movies/:id", s.handleDeleteMovie)
}

// handleListMovies godoc
// @Summary List Movies
// @Description List the caller's movies, filtered and paginated
// @Tags movies
// @Produce json
// @Param title query string false "Title or original title substring"
// @Param page query int false "1-based page number"
// @Param duration query int false "Maximum duration in minutes"
// @Param startDate query string false "Earliest release date (YYYY-MM-DD)"
// @Param endDate query string false "Latest release date (YYYY-MM-DD)"
// @Param genre query string false "Genre substring"
// @Security BearerAuth
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Router /api/movies [get]
func (s *Server) handleListMovies(c echo.Context) error {
	var req ListMoviesRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	q, err := req.ToListQuery()
	if err != nil {
		return err
	}

	page, err := s.MovieService.List(c.Request().Context(), currentUserID(c), q)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, page)
}

// handleSaveMovie godoc
// @Summary Create or Update Movie
// @Description Upsert a movie from a multipart form; a non-zero id updates that record
// @Tags movies
// @Accept mpfd
// @Produce json
// @Param image formData file false "Poster image"
// @Security BearerAuth
// @Success 200 {object} APIResponse
// @Success 201 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Router /api/movies [post]
func (s *Server) handleSaveMovie(c echo.Context) error {
	var req SaveMovieRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	// The image file is optional; a direct imageUrl field is used only when
	// no file is attached.
	var image *movie.Upload
	if header, err := c.FormFile("image"); err == nil {
		src, err := header.Open()
		if err != nil {
			return err
		}
		defer src.Close()

		image = &movie.Upload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Body:        src,
		}
	}

	in, err := req.ToSaveInput(image)
	if err != nil {
		return err
	}

	saved, err := s.MovieService.Save(c.Request().Context(), currentUserID(c), in)
	if err != nil {
		return err
	}

	status := http.StatusCreated
	message := "Movie created successfully"
	if in.ID > 0 {
		status = http.StatusOK
		message = "Movie updated successfully"
	}

	return writeSuccess(c, status, map[string]interface{}{
		"message": message,
		"movie":   saved,
	})
}

// handleGetMovie godoc
// @Summary Get Movie
// @Description Fetch one of the caller's movies by id
// @Tags movies
// @Produce json
// @Param id path int true "Movie id"
// @Security BearerAuth
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/movies/{id} [get]
func (s *Server) handleGetMovie(c echo.Context) error {
	id, err := movieID(c)
	if err != nil {
		return err
	}

	m, err := s.MovieService.Get(c.Request().Context(), currentUserID(c), id)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, m)
}

// handleDeleteMovie godoc
// @Summary Delete Movie
// @Description Delete one of the caller's movies by id
// @Tags movies
// @Produce json
// @Param id path int true "Movie id"
// @Security BearerAuth
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/movies/{id} [delete]
func (s *Server) handleDeleteMovie(c echo.Context) error {
	id, err := movieID(c)
	if err != nil {
		return err
	}

	if err := s.MovieService.Delete(c.Request().Context(), currentUserID(c), id); err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, map[string]string{
		"message": "Movie deleted successfully",
	})
}

func movieID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errs.Errorf(errs.EINVALID, "invalid movie id")
	}
	return id, nil
}
