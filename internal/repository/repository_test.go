package repository_test

import (
	"context"
	"fmt"
	"testing"

	"movie-catalog/internal/apperror"
	"movie-catalog/internal/database"
	"movie-catalog/internal/models"
	"movie-catalog/internal/repository"
	"movie-catalog/internal/testutil"

	"github.com/stretchr/testify/suite"
)

type RepositoryTestSuite struct {
	suite.Suite

	db  *database.Database
	ctx context.Context
}

func (suite *RepositoryTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.db = testutil.NewTestDB(suite.T())
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}

func (suite *RepositoryTestSuite) TestRatingSummary_MeanAndDistinctRaters() {
	t := suite.T()
	repo := repository.NewMovieRepository(suite.db)
	movie := testutil.CreateMovie(t, suite.db, "Heat", 1995, nil, nil)
	ann := testutil.CreateUser(t, suite.db, "ann")
	bob := testutil.CreateUser(t, suite.db, "bob")

	suite.Require().NoError(suite.db.Create(&models.Rating{MovieID: movie.ID, UserID: ann.ID, Score: 7}).Error)
	suite.Require().NoError(suite.db.Create(&models.Rating{MovieID: movie.ID, UserID: bob.ID, Score: 10}).Error)

	summary, err := repo.RatingSummary(suite.ctx, movie.ID)

	suite.Require().NoError(err)
	suite.InDelta(8.5, summary.AverageRating, 1e-9)
	suite.Equal(int64(2), summary.CountPeople)
}

func (suite *RepositoryTestSuite) TestRatingSummary_NoRatings() {
	repo := repository.NewMovieRepository(suite.db)
	movie := testutil.CreateMovie(suite.T(), suite.db, "Unrated", 2001, nil, nil)

	summary, err := repo.RatingSummary(suite.ctx, movie.ID)

	suite.Require().NoError(err)
	suite.Equal(0.0, summary.AverageRating)
	suite.Equal(int64(0), summary.CountPeople)
}

func (suite *RepositoryTestSuite) TestFindByID_NotFound() {
	repo := repository.NewMovieRepository(suite.db)

	_, err := repo.FindByID(suite.ctx, 404)

	suite.True(apperror.IsNotFound(err))
}

func (suite *RepositoryTestSuite) TestFindAll_FiltersAndPages() {
	t := suite.T()
	repo := repository.NewMovieRepository(suite.db)
	drama := testutil.CreateGenre(t, suite.db, "Drama", nil)
	france := testutil.CreateCountry(t, suite.db, "France")

	testutil.CreateMovie(t, suite.db, "Amelie", 2001, []models.Genre{*drama}, []models.Country{*france})
	testutil.CreateMovie(t, suite.db, "Amour", 2012, []models.Genre{*drama}, nil)
	testutil.CreateMovie(t, suite.db, "Alien", 1979, nil, nil)

	movies, total, err := repo.FindAll(suite.ctx, models.MovieFilter{Search: "am"}, 0, 10)
	suite.Require().NoError(err)
	suite.Equal(int64(2), total)
	suite.Len(movies, 2)

	movies, total, err = repo.FindAll(suite.ctx, models.MovieFilter{CountryID: france.ID}, 0, 10)
	suite.Require().NoError(err)
	suite.Equal(int64(1), total)
	suite.Equal("Amelie", movies[0].MovieName)
	suite.Len(movies[0].Genres, 1)
	suite.Len(movies[0].Countries, 1)

	movies, total, err = repo.FindAll(suite.ctx, models.MovieFilter{}, 2, 2)
	suite.Require().NoError(err)
	suite.Equal(int64(3), total)
	suite.Len(movies, 1)
	suite.Equal("Alien", movies[0].MovieName)
}

func (suite *RepositoryTestSuite) TestByGenre_IteratesAcrossBatchesAndRestarts() {
	t := suite.T()
	repo := repository.NewMovieRepository(suite.db)
	horror := testutil.CreateGenre(t, suite.db, "Horror", nil)
	other := testutil.CreateGenre(t, suite.db, "Comedy", nil)

	const linked = 63
	for i := 0; i < linked; i++ {
		testutil.CreateMovie(t, suite.db, fmt.Sprintf("Scary %d", i), 1990, []models.Genre{*horror}, nil)
	}
	testutil.CreateMovie(t, suite.db, "Funny", 1990, []models.Genre{*other}, nil)

	seq := repo.ByGenre(suite.ctx, horror.ID)

	for pass := 0; pass < 2; pass++ {
		var count int
		var lastID uint
		for movie, err := range seq {
			suite.Require().NoError(err)
			suite.Greater(movie.ID, lastID)
			lastID = movie.ID
			count++
		}
		suite.Equal(linked, count)
	}
}

func (suite *RepositoryTestSuite) TestByGenre_StopsEarly() {
	t := suite.T()
	repo := repository.NewMovieRepository(suite.db)
	genre := testutil.CreateGenre(t, suite.db, "Noir", nil)
	for i := 0; i < 3; i++ {
		testutil.CreateMovie(t, suite.db, fmt.Sprintf("Noir %d", i), 1950, []models.Genre{*genre}, nil)
	}

	var seen int
	for _, err := range repo.ByGenre(suite.ctx, genre.ID) {
		suite.Require().NoError(err)
		seen++
		break
	}
	suite.Equal(1, seen)
}

func (suite *RepositoryTestSuite) TestCountLikes() {
	t := suite.T()
	repo := repository.NewReviewRepository(suite.db)
	movie := testutil.CreateMovie(t, suite.db, "Up", 2009, nil, nil)
	ann := testutil.CreateUser(t, suite.db, "ann")
	bob := testutil.CreateUser(t, suite.db, "bob")
	liked := testutil.CreateReview(t, suite.db, movie.ID, ann.ID, "great", nil)
	ignored := testutil.CreateReview(t, suite.db, movie.ID, bob.ID, "meh", nil)

	suite.Require().NoError(suite.db.Create(&models.ReviewLike{ReviewID: liked.ID, UserID: ann.ID}).Error)
	suite.Require().NoError(suite.db.Create(&models.ReviewLike{ReviewID: liked.ID, UserID: bob.ID}).Error)

	counts, err := repo.CountLikes(suite.ctx, []uint{liked.ID, ignored.ID})

	suite.Require().NoError(err)
	suite.Equal(int64(2), counts[liked.ID])
	suite.Equal(int64(0), counts[ignored.ID])
}

func (suite *RepositoryTestSuite) TestForMovie_PreloadsAuthors() {
	t := suite.T()
	repo := repository.NewReviewRepository(suite.db)
	movie := testutil.CreateMovie(t, suite.db, "Up", 2009, nil, nil)
	ann := testutil.CreateUser(t, suite.db, "ann")
	first := testutil.CreateReview(t, suite.db, movie.ID, ann.ID, "first", nil)
	testutil.CreateReview(t, suite.db, movie.ID, ann.ID, "reply", &first.ID)

	reviews, err := repo.ForMovie(suite.ctx, movie.ID)

	suite.Require().NoError(err)
	suite.Len(reviews, 2)
	suite.Equal("ann", reviews[0].User.Username)
	suite.Equal(first.ID, *reviews[1].ParentID)
}

func (suite *RepositoryTestSuite) TestStoreUpsert_ReplacesScore() {
	t := suite.T()
	store := repository.NewStore[models.Rating](suite.db, "rating")
	movie := testutil.CreateMovie(t, suite.db, "Jaws", 1975, nil, nil)
	ann := testutil.CreateUser(t, suite.db, "ann")
	upsert := repository.Upsert[models.Rating]{
		Columns: []string{"movie_id", "user_id"},
		Update:  []string{"score", "updated_at"},
		Values:  func(r *models.Rating) []any { return []any{r.MovieID, r.UserID} },
	}

	first := &models.Rating{MovieID: movie.ID, UserID: ann.ID, Score: 3}
	suite.Require().NoError(store.Upsert(suite.ctx, first, upsert))
	second := &models.Rating{MovieID: movie.ID, UserID: ann.ID, Score: 9}
	suite.Require().NoError(store.Upsert(suite.ctx, second, upsert))

	suite.Equal(first.ID, second.ID)
	suite.Equal(9, second.Score)

	var count int64
	suite.Require().NoError(suite.db.Model(&models.Rating{}).Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *RepositoryTestSuite) TestStoreListScopedToFavoritesOwner() {
	t := suite.T()
	store := repository.NewStore[models.FavoriteMovie](suite.db, "favorite movie", "Favorite")
	movie := testutil.CreateMovie(t, suite.db, "Big", 1988, nil, nil)
	ann := testutil.CreateUser(t, suite.db, "ann")
	bob := testutil.CreateUser(t, suite.db, "bob")
	annFav := &models.Favorite{UserID: ann.ID}
	bobFav := &models.Favorite{UserID: bob.ID}
	suite.Require().NoError(suite.db.Create(annFav).Error)
	suite.Require().NoError(suite.db.Create(bobFav).Error)
	suite.Require().NoError(store.Create(suite.ctx, &models.FavoriteMovie{FavoriteID: annFav.ID, MovieID: movie.ID}))
	suite.Require().NoError(store.Create(suite.ctx, &models.FavoriteMovie{FavoriteID: bobFav.ID, MovieID: movie.ID}))

	items, total, err := store.List(suite.ctx, 0, 10, repository.FavoriteMoviesOf(ann.ID))

	suite.Require().NoError(err)
	suite.Equal(int64(1), total)
	suite.Require().Len(items, 1)
	suite.Equal(ann.ID, items[0].Favorite.UserID)
}

func (suite *RepositoryTestSuite) TestStoreCreate_DuplicateIsConflict() {
	t := suite.T()
	store := repository.NewStore[models.Favorite](suite.db, "favorite")
	ann := testutil.CreateUser(t, suite.db, "ann")

	suite.Require().NoError(store.Create(suite.ctx, &models.Favorite{UserID: ann.ID}))
	err := store.Create(suite.ctx, &models.Favorite{UserID: ann.ID})

	suite.True(apperror.IsConflict(err))
}

func (suite *RepositoryTestSuite) TestStoreDelete_Missing() {
	store := repository.NewStore[models.History](suite.db, "history")

	err := store.Delete(suite.ctx, 99)

	suite.True(apperror.IsNotFound(err))
}

func (suite *RepositoryTestSuite) TestStoreDelete_CascadesRepliesAndDependents() {
	t := suite.T()
	store := repository.NewStore[models.Review](suite.db, "review").WithCascade(repository.Cascade{
		Replies:    "parent_id",
		Dependents: []repository.Dependent{{Model: &models.ReviewLike{}, Column: "review_id"}},
	})
	movie := testutil.CreateMovie(t, suite.db, "Up", 2009, nil, nil)
	ann := testutil.CreateUser(t, suite.db, "ann")
	root := testutil.CreateReview(t, suite.db, movie.ID, ann.ID, "root", nil)
	reply := testutil.CreateReview(t, suite.db, movie.ID, ann.ID, "reply", &root.ID)
	testutil.CreateReview(t, suite.db, movie.ID, ann.ID, "nested", &reply.ID)
	kept := testutil.CreateReview(t, suite.db, movie.ID, ann.ID, "kept", nil)
	suite.Require().NoError(suite.db.Create(&models.ReviewLike{ReviewID: reply.ID, UserID: ann.ID}).Error)
	suite.Require().NoError(suite.db.Create(&models.ReviewLike{ReviewID: kept.ID, UserID: ann.ID}).Error)

	suite.Require().NoError(store.Delete(suite.ctx, root.ID))

	var ids []uint
	suite.Require().NoError(suite.db.Model(&models.Review{}).Pluck("id", &ids).Error)
	suite.Equal([]uint{kept.ID}, ids)

	var likes int64
	suite.Require().NoError(suite.db.Model(&models.ReviewLike{}).Count(&likes).Error)
	suite.Equal(int64(1), likes)
}

func (suite *RepositoryTestSuite) TestCountRepliesOutside() {
	t := suite.T()
	repo := repository.NewReviewRepository(suite.db)
	up := testutil.CreateMovie(t, suite.db, "Up", 2009, nil, nil)
	jaws := testutil.CreateMovie(t, suite.db, "Jaws", 1975, nil, nil)
	ann := testutil.CreateUser(t, suite.db, "ann")
	root := testutil.CreateReview(t, suite.db, up.ID, ann.ID, "root", nil)
	testutil.CreateReview(t, suite.db, up.ID, ann.ID, "reply", &root.ID)

	count, err := repo.CountRepliesOutside(suite.ctx, root.ID, up.ID)
	suite.Require().NoError(err)
	suite.Zero(count)

	count, err = repo.CountRepliesOutside(suite.ctx, root.ID, jaws.ID)
	suite.Require().NoError(err)
	suite.Equal(int64(1), count)
}

func (suite *RepositoryTestSuite) TestUserRepository_ExistsAndTransaction() {
	repo := repository.NewUserRepository(suite.db)
	testutil.CreateUser(suite.T(), suite.db, "ann")

	usernameTaken, emailTaken, err := repo.ExistsByUsernameOrEmail(suite.ctx, "ann", "new@example.com")
	suite.Require().NoError(err)
	suite.True(usernameTaken)
	suite.False(emailTaken)

	err = repo.Transaction(suite.ctx, func(tx repository.UserRepository) error {
		return tx.Create(&models.UserProfile{Username: "ann", Email: "other@example.com", PasswordHash: "x"})
	})
	suite.True(apperror.IsConflict(err))

	user, err := repo.FindByUsername(suite.ctx, "nobody")
	suite.Require().NoError(err)
	suite.Nil(user)
}

func (suite *RepositoryTestSuite) TestTokenRepository() {
	repo := repository.NewTokenRepository(suite.db)

	suite.Require().NoError(repo.Blacklist(suite.ctx, &models.BlacklistedToken{JTI: "abc", UserID: 1}))

	blacklisted, err := repo.IsBlacklisted(suite.ctx, "abc")
	suite.Require().NoError(err)
	suite.True(blacklisted)

	blacklisted, err = repo.IsBlacklisted(suite.ctx, "other")
	suite.Require().NoError(err)
	suite.False(blacklisted)
}
