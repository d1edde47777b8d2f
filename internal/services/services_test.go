package services_test

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	"movie-catalog/internal/apperror"
	"movie-catalog/internal/auth"
	"movie-catalog/internal/database"
	"movie-catalog/internal/models"
	"movie-catalog/internal/pagination"
	"movie-catalog/internal/repository"
	"movie-catalog/internal/serializers"
	"movie-catalog/internal/services"
	"movie-catalog/internal/testutil"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
)

func body(raw string) services.Decoder {
	return func(v any) error {
		return json.Unmarshal([]byte(raw), v)
	}
}

type fakeStorage struct {
	deleted []string
}

func (f *fakeStorage) PresignUpload(context.Context, string) (*services.PresignedUpload, error) {
	return &services.PresignedUpload{}, nil
}

func (f *fakeStorage) Owns(url string) bool {
	return len(url) > 0 && url[0] == 's'
}

func (f *fakeStorage) Delete(_ context.Context, url string) error {
	f.deleted = append(f.deleted, url)
	return nil
}

type ServicesTestSuite struct {
	suite.Suite

	ctx       context.Context
	db        *database.Database
	logger    *logrus.Logger
	storage   *fakeStorage
	auth      services.AuthService
	users     services.UserService
	movies    services.MovieService
	catalog   services.CatalogService
	resources *services.Resources
}

func (suite *ServicesTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.db = testutil.NewTestDB(suite.T())
	suite.logger = logrus.New()
	suite.logger.SetOutput(io.Discard)
	suite.storage = &fakeStorage{}

	userRepo := repository.NewUserRepository(suite.db)
	tokenRepo := repository.NewTokenRepository(suite.db)
	movieRepo := repository.NewMovieRepository(suite.db)
	reviewRepo := repository.NewReviewRepository(suite.db)
	tokens := auth.NewJWTService(testutil.TestConfig().JWT, tokenRepo)

	suite.auth = services.NewAuthService(userRepo, tokens, tokenRepo, suite.logger)
	suite.users = services.NewUserService(userRepo, suite.storage, suite.logger)
	suite.movies = services.NewMovieService(movieRepo, reviewRepo)
	suite.catalog = services.NewCatalogService(repository.NewCatalogRepository(suite.db), movieRepo)
	suite.resources = services.NewResources(suite.db, movieRepo, reviewRepo)
}

func TestServicesSuite(t *testing.T) {
	suite.Run(t, new(ServicesTestSuite))
}

func registration(username, email string) serializers.RegisterInput {
	age := 25
	return serializers.RegisterInput{
		Username:    username,
		Email:       email,
		Password:    "s3cret-pass",
		FirstName:   "Ann",
		LastName:    "Lee",
		Age:         &age,
		PhoneNumber: "555-0101",
	}
}

func (suite *ServicesTestSuite) TestRegister_HashesPassword() {
	user, err := suite.auth.Register(suite.ctx, registration("ann", "ann@example.com"))

	suite.Require().NoError(err)
	suite.NotZero(user.ID)
	suite.NotEqual("s3cret-pass", user.PasswordHash)
	suite.True(user.IsActive)
}

func (suite *ServicesTestSuite) TestRegister_DuplicateUsername() {
	_, err := suite.auth.Register(suite.ctx, registration("ann", "ann@example.com"))
	suite.Require().NoError(err)

	_, err = suite.auth.Register(suite.ctx, registration("ann", "other@example.com"))

	appErr, ok := apperror.As(err)
	suite.Require().True(ok)
	suite.Equal(apperror.KindConflict, appErr.Kind)
	suite.Contains(appErr.Fields, "username")
	suite.NotContains(appErr.Fields, "email")
}

func (suite *ServicesTestSuite) TestRegister_ValidationFields() {
	in := registration("", "not-an-email")
	in.Age = nil

	_, err := suite.auth.Register(suite.ctx, in)

	appErr, ok := apperror.As(err)
	suite.Require().True(ok)
	suite.Equal(apperror.KindValidation, appErr.Kind)
	suite.Equal("This field is required.", appErr.Fields["username"])
	suite.Equal("Enter a valid email address.", appErr.Fields["email"])
	suite.Contains(appErr.Fields, "age")
}

func (suite *ServicesTestSuite) TestLogin() {
	testutil.CreateUser(suite.T(), suite.db, "ann")

	user, pair, err := suite.auth.Login(suite.ctx, serializers.LoginInput{Username: "ann", Password: "ann-pass"})

	suite.Require().NoError(err)
	suite.Equal("ann", user.Username)
	suite.NotEmpty(pair.Access)
	suite.NotEmpty(pair.Refresh)
}

func (suite *ServicesTestSuite) TestLogin_FailuresAreGeneric() {
	testutil.CreateUser(suite.T(), suite.db, "ann")
	inactive := testutil.CreateUser(suite.T(), suite.db, "bob")
	suite.Require().NoError(suite.db.Model(inactive).Update("is_active", false).Error)

	attempts := []serializers.LoginInput{
		{Username: "ann", Password: "wrong"},
		{Username: "nobody", Password: "ann-pass"},
		{Username: "bob", Password: "bob-pass"},
	}

	var messages []string
	for _, in := range attempts {
		_, _, err := suite.auth.Login(suite.ctx, in)
		appErr, ok := apperror.As(err)
		suite.Require().True(ok)
		suite.Equal(apperror.KindAuthenticationInvalid, appErr.Kind)
		messages = append(messages, appErr.Message)
	}
	suite.Equal(messages[0], messages[1])
	suite.Equal(messages[0], messages[2])
}

func (suite *ServicesTestSuite) TestLogoutRevokesRefresh() {
	testutil.CreateUser(suite.T(), suite.db, "ann")
	_, pair, err := suite.auth.Login(suite.ctx, serializers.LoginInput{Username: "ann", Password: "ann-pass"})
	suite.Require().NoError(err)

	access, err := suite.auth.Refresh(suite.ctx, serializers.RefreshInput{Refresh: pair.Refresh})
	suite.Require().NoError(err)
	suite.NotEmpty(access)

	suite.Require().NoError(suite.auth.Logout(suite.ctx, serializers.RefreshInput{Refresh: pair.Refresh}))

	_, err = suite.auth.Refresh(suite.ctx, serializers.RefreshInput{Refresh: pair.Refresh})
	suite.True(apperror.IsAuthenticationInvalid(err))
	suite.True(apperror.IsAuthenticationInvalid(suite.auth.Logout(suite.ctx, serializers.RefreshInput{Refresh: "garbage"})))
}

func (suite *ServicesTestSuite) TestUserUpdate_OwnerOnly() {
	ann := testutil.CreateUser(suite.T(), suite.db, "ann")
	bob := testutil.CreateUser(suite.T(), suite.db, "bob")

	_, err := suite.users.Update(suite.ctx, bob.ID, ann.ID, true, body(`{"first_name":"Mallory"}`))
	suite.True(apperror.IsForbidden(err))

	_, err = suite.users.Update(suite.ctx, ann.ID, 999, true, body(`{}`))
	suite.True(apperror.IsNotFound(err))
}

func (suite *ServicesTestSuite) TestUserUpdate_PartialKeepsFieldsAndRemovesOldAvatar() {
	ann := testutil.CreateUser(suite.T(), suite.db, "ann")
	suite.Require().NoError(suite.db.Model(ann).Update("avatar", "s3://old.png").Error)

	updated, err := suite.users.Update(suite.ctx, ann.ID, ann.ID, true, body(`{"first_name":"Annie","avatar":"https://cdn.example.com/new.png"}`))

	suite.Require().NoError(err)
	suite.Equal("Annie", updated.FirstName)
	suite.Equal(ann.LastName, updated.LastName)
	suite.Equal(ann.Age, updated.Age)
	suite.Equal([]string{"s3://old.png"}, suite.storage.deleted)

	stored, err := suite.users.Get(suite.ctx, ann.ID)
	suite.Require().NoError(err)
	suite.Equal("Annie", stored.FirstName)
}

func (suite *ServicesTestSuite) TestUserUpdate_FullRequiresFields() {
	ann := testutil.CreateUser(suite.T(), suite.db, "ann")

	_, err := suite.users.Update(suite.ctx, ann.ID, ann.ID, false, body(`{"first_name":"Annie"}`))

	suite.True(apperror.IsValidation(err))
}

func (suite *ServicesTestSuite) TestMovieDetail_DerivedFields() {
	t := suite.T()
	movie := testutil.CreateMovie(t, suite.db, "Heat", 1995, nil, nil)
	ann := testutil.CreateUser(t, suite.db, "ann")
	bob := testutil.CreateUser(t, suite.db, "bob")
	review := testutil.CreateReview(t, suite.db, movie.ID, ann.ID, "classic", nil)
	suite.Require().NoError(suite.db.Create(&models.Rating{MovieID: movie.ID, UserID: ann.ID, Score: 6}).Error)
	suite.Require().NoError(suite.db.Create(&models.Rating{MovieID: movie.ID, UserID: bob.ID, Score: 9}).Error)
	suite.Require().NoError(suite.db.Create(&models.ReviewLike{ReviewID: review.ID, UserID: bob.ID}).Error)

	details, err := suite.movies.Detail(suite.ctx, movie.ID)

	suite.Require().NoError(err)
	suite.InDelta(7.5, details.Rating.AverageRating, 1e-9)
	suite.Equal(int64(2), details.Rating.CountPeople)
	suite.Require().Len(details.Reviews, 1)
	suite.Equal(int64(1), details.Likes[review.ID])
}

func (suite *ServicesTestSuite) TestCatalogGetGenre_ListsLinkedMovies() {
	t := suite.T()
	drama := testutil.CreateGenre(t, suite.db, "Drama", nil)
	testutil.CreateMovie(t, suite.db, "Amour", 2012, []models.Genre{*drama}, nil)
	testutil.CreateMovie(t, suite.db, "Alien", 1979, nil, nil)

	genre, movies, err := suite.catalog.GetGenre(suite.ctx, drama.ID)

	suite.Require().NoError(err)
	suite.Equal("Drama", genre.GenreName)
	suite.Require().Len(movies, 1)
	suite.Equal("Amour", movies[0].MovieName)

	_, _, err = suite.catalog.GetGenre(suite.ctx, 999)
	suite.True(apperror.IsNotFound(err))
}

func (suite *ServicesTestSuite) TestReview_OwnershipAndPersistence() {
	t := suite.T()
	movie := testutil.CreateMovie(t, suite.db, "Up", 2009, nil, nil)
	ann := testutil.CreateUser(t, suite.db, "ann")
	bob := testutil.CreateUser(t, suite.db, "bob")

	review, err := suite.resources.Reviews.Create(suite.ctx, ann.ID, body(`{"movie":`+itoa(movie.ID)+`,"text":"lovely"}`))
	suite.Require().NoError(err)
	suite.Equal(ann.ID, review.UserID)

	_, err = suite.resources.Reviews.Update(suite.ctx, bob.ID, review.ID, true, body(`{"text":"hijacked"}`))
	suite.True(apperror.IsForbidden(err))
	suite.True(apperror.IsForbidden(suite.resources.Reviews.Delete(suite.ctx, bob.ID, review.ID)))

	updated, err := suite.resources.Reviews.Update(suite.ctx, ann.ID, review.ID, true, body(`{"text":"still lovely"}`))
	suite.Require().NoError(err)
	suite.Equal("still lovely", updated.Text)
	suite.Equal(movie.ID, updated.MovieID)

	stored, err := suite.resources.Reviews.Get(suite.ctx, bob.ID, review.ID)
	suite.Require().NoError(err)
	suite.Equal("still lovely", stored.Text)
	suite.Equal(ann.ID, stored.UserID)
}

func (suite *ServicesTestSuite) TestReview_ParentMustShareMovie() {
	t := suite.T()
	up := testutil.CreateMovie(t, suite.db, "Up", 2009, nil, nil)
	jaws := testutil.CreateMovie(t, suite.db, "Jaws", 1975, nil, nil)
	ann := testutil.CreateUser(t, suite.db, "ann")
	parent := testutil.CreateReview(t, suite.db, jaws.ID, ann.ID, "shark", nil)

	_, err := suite.resources.Reviews.Create(suite.ctx, ann.ID,
		body(`{"movie":`+itoa(up.ID)+`,"text":"reply","parent":`+itoa(parent.ID)+`}`))
	appErr, ok := apperror.As(err)
	suite.Require().True(ok)
	suite.Equal(apperror.KindValidation, appErr.Kind)
	suite.Contains(appErr.Fields, "parent")

	reply, err := suite.resources.Reviews.Create(suite.ctx, ann.ID,
		body(`{"movie":`+itoa(jaws.ID)+`,"text":"reply","parent":`+itoa(parent.ID)+`}`))
	suite.Require().NoError(err)
	suite.Equal(parent.ID, *reply.ParentID)
}

func (suite *ServicesTestSuite) TestReview_DeleteRemovesThreadAndLikes() {
	t := suite.T()
	movie := testutil.CreateMovie(t, suite.db, "Up", 2009, nil, nil)
	ann := testutil.CreateUser(t, suite.db, "ann")
	bob := testutil.CreateUser(t, suite.db, "bob")
	root := testutil.CreateReview(t, suite.db, movie.ID, ann.ID, "root", nil)
	reply := testutil.CreateReview(t, suite.db, movie.ID, bob.ID, "reply", &root.ID)
	nested := testutil.CreateReview(t, suite.db, movie.ID, ann.ID, "nested", &reply.ID)
	other := testutil.CreateReview(t, suite.db, movie.ID, bob.ID, "other", nil)
	for _, id := range []uint{root.ID, reply.ID, nested.ID, other.ID} {
		suite.Require().NoError(suite.db.Create(&models.ReviewLike{ReviewID: id, UserID: bob.ID}).Error)
	}

	suite.Require().NoError(suite.resources.Reviews.Delete(suite.ctx, ann.ID, root.ID))

	var reviews []models.Review
	suite.Require().NoError(suite.db.Find(&reviews).Error)
	suite.Require().Len(reviews, 1)
	suite.Equal(other.ID, reviews[0].ID)

	var likes []models.ReviewLike
	suite.Require().NoError(suite.db.Find(&likes).Error)
	suite.Require().Len(likes, 1)
	suite.Equal(other.ID, likes[0].ReviewID)

	details, err := suite.movies.Detail(suite.ctx, movie.ID)
	suite.Require().NoError(err)
	suite.Len(details.Reviews, 1)
}

func (suite *ServicesTestSuite) TestReview_DeleteMissingKeepsThread() {
	t := suite.T()
	movie := testutil.CreateMovie(t, suite.db, "Up", 2009, nil, nil)
	ann := testutil.CreateUser(t, suite.db, "ann")
	root := testutil.CreateReview(t, suite.db, movie.ID, ann.ID, "root", nil)
	testutil.CreateReview(t, suite.db, movie.ID, ann.ID, "reply", &root.ID)

	err := suite.resources.Reviews.Delete(suite.ctx, ann.ID, root.ID+100)

	suite.True(apperror.IsNotFound(err))
	var count int64
	suite.Require().NoError(suite.db.Model(&models.Review{}).Count(&count).Error)
	suite.Equal(int64(2), count)
}

func (suite *ServicesTestSuite) TestReview_CannotMoveAwayFromReplies() {
	t := suite.T()
	up := testutil.CreateMovie(t, suite.db, "Up", 2009, nil, nil)
	jaws := testutil.CreateMovie(t, suite.db, "Jaws", 1975, nil, nil)
	ann := testutil.CreateUser(t, suite.db, "ann")
	root := testutil.CreateReview(t, suite.db, up.ID, ann.ID, "root", nil)
	reply := testutil.CreateReview(t, suite.db, up.ID, ann.ID, "reply", &root.ID)
	lone := testutil.CreateReview(t, suite.db, up.ID, ann.ID, "lone", nil)

	_, err := suite.resources.Reviews.Update(suite.ctx, ann.ID, root.ID, true, body(`{"movie":`+itoa(jaws.ID)+`}`))
	appErr, ok := apperror.As(err)
	suite.Require().True(ok)
	suite.Equal(apperror.KindValidation, appErr.Kind)
	suite.Contains(appErr.Fields, "movie")

	_, err = suite.resources.Reviews.Update(suite.ctx, ann.ID, reply.ID, true, body(`{"movie":`+itoa(jaws.ID)+`}`))
	appErr, ok = apperror.As(err)
	suite.Require().True(ok)
	suite.Contains(appErr.Fields, "parent")

	var stored []models.Review
	suite.Require().NoError(suite.db.Where("id IN ?", []uint{root.ID, reply.ID}).Find(&stored).Error)
	for _, review := range stored {
		suite.Equal(up.ID, review.MovieID)
	}

	moved, err := suite.resources.Reviews.Update(suite.ctx, ann.ID, lone.ID, true, body(`{"movie":`+itoa(jaws.ID)+`}`))
	suite.Require().NoError(err)
	suite.Equal(jaws.ID, moved.MovieID)
}

func (suite *ServicesTestSuite) TestReview_ParentCannotBeOwnReply() {
	t := suite.T()
	movie := testutil.CreateMovie(t, suite.db, "Up", 2009, nil, nil)
	ann := testutil.CreateUser(t, suite.db, "ann")
	root := testutil.CreateReview(t, suite.db, movie.ID, ann.ID, "root", nil)
	reply := testutil.CreateReview(t, suite.db, movie.ID, ann.ID, "reply", &root.ID)
	nested := testutil.CreateReview(t, suite.db, movie.ID, ann.ID, "nested", &reply.ID)

	for _, parent := range []uint{root.ID, reply.ID, nested.ID} {
		_, err := suite.resources.Reviews.Update(suite.ctx, ann.ID, root.ID, true, body(`{"parent":`+itoa(parent)+`}`))
		appErr, ok := apperror.As(err)
		suite.Require().True(ok, "parent %d", parent)
		suite.Contains(appErr.Fields, "parent")
	}

	stored, err := suite.resources.Reviews.Get(suite.ctx, ann.ID, root.ID)
	suite.Require().NoError(err)
	suite.Nil(stored.ParentID)

	sibling := testutil.CreateReview(t, suite.db, movie.ID, ann.ID, "sibling", nil)
	updated, err := suite.resources.Reviews.Update(suite.ctx, ann.ID, nested.ID, true, body(`{"parent":`+itoa(sibling.ID)+`}`))
	suite.Require().NoError(err)
	suite.Equal(sibling.ID, *updated.ParentID)
}

func (suite *ServicesTestSuite) TestReview_UnknownMovie() {
	ann := testutil.CreateUser(suite.T(), suite.db, "ann")

	_, err := suite.resources.Reviews.Create(suite.ctx, ann.ID, body(`{"movie":404,"text":"?"}`))

	appErr, ok := apperror.As(err)
	suite.Require().True(ok)
	suite.Contains(appErr.Fields, "movie")
}

func (suite *ServicesTestSuite) TestRating_UpsertAndRange() {
	t := suite.T()
	movie := testutil.CreateMovie(t, suite.db, "Up", 2009, nil, nil)
	ann := testutil.CreateUser(t, suite.db, "ann")

	first, err := suite.resources.Ratings.Create(suite.ctx, ann.ID, body(`{"movie":`+itoa(movie.ID)+`,"stars":4}`))
	suite.Require().NoError(err)
	second, err := suite.resources.Ratings.Create(suite.ctx, ann.ID, body(`{"movie":`+itoa(movie.ID)+`,"stars":8}`))
	suite.Require().NoError(err)
	suite.Equal(first.ID, second.ID)
	suite.Equal(8, second.Score)

	_, err = suite.resources.Ratings.Create(suite.ctx, ann.ID, body(`{"movie":`+itoa(movie.ID)+`,"stars":11}`))
	suite.True(apperror.IsValidation(err))
}

func (suite *ServicesTestSuite) TestReviewLike_Idempotent() {
	t := suite.T()
	movie := testutil.CreateMovie(t, suite.db, "Up", 2009, nil, nil)
	ann := testutil.CreateUser(t, suite.db, "ann")
	review := testutil.CreateReview(t, suite.db, movie.ID, ann.ID, "ok", nil)

	first, err := suite.resources.ReviewLikes.Create(suite.ctx, ann.ID, body(`{"review":`+itoa(review.ID)+`}`))
	suite.Require().NoError(err)
	second, err := suite.resources.ReviewLikes.Create(suite.ctx, ann.ID, body(`{"review":`+itoa(review.ID)+`}`))
	suite.Require().NoError(err)
	suite.Equal(first.ID, second.ID)

	likes, total, err := suite.resources.ReviewLikes.List(suite.ctx, ann.ID, pagination.Request{Page: 1, Size: 10})
	suite.Require().NoError(err)
	suite.Equal(int64(1), total)
	suite.Len(likes, 1)
}

func (suite *ServicesTestSuite) TestFavorites_PrivateToOwner() {
	t := suite.T()
	movie := testutil.CreateMovie(t, suite.db, "Up", 2009, nil, nil)
	ann := testutil.CreateUser(t, suite.db, "ann")
	bob := testutil.CreateUser(t, suite.db, "bob")

	favorite, err := suite.resources.Favorites.Create(suite.ctx, ann.ID, body(`{}`))
	suite.Require().NoError(err)
	suite.Equal(ann.ID, favorite.UserID)

	_, err = suite.resources.Favorites.Create(suite.ctx, ann.ID, body(`{}`))
	suite.True(apperror.IsConflict(err))

	_, err = suite.resources.FavoriteMovies.Create(suite.ctx, bob.ID,
		body(`{"favorite":`+itoa(favorite.ID)+`,"movie":`+itoa(movie.ID)+`}`))
	suite.True(apperror.IsForbidden(err))

	entry, err := suite.resources.FavoriteMovies.Create(suite.ctx, ann.ID,
		body(`{"favorite":`+itoa(favorite.ID)+`,"movie":`+itoa(movie.ID)+`}`))
	suite.Require().NoError(err)

	_, err = suite.resources.FavoriteMovies.Get(suite.ctx, bob.ID, entry.ID)
	suite.True(apperror.IsNotFound(err))

	items, total, err := suite.resources.FavoriteMovies.List(suite.ctx, bob.ID, pagination.Request{Page: 1, Size: 10})
	suite.Require().NoError(err)
	suite.Zero(total)
	suite.Empty(items)

	items, total, err = suite.resources.FavoriteMovies.List(suite.ctx, ann.ID, pagination.Request{Page: 1, Size: 10})
	suite.Require().NoError(err)
	suite.Equal(int64(1), total)
	suite.Equal(movie.ID, items[0].MovieID)

	suite.Require().NoError(suite.resources.FavoriteMovies.Delete(suite.ctx, ann.ID, entry.ID))
}

func (suite *ServicesTestSuite) TestFavorites_DeleteRemovesEntries() {
	t := suite.T()
	movie := testutil.CreateMovie(t, suite.db, "Up", 2009, nil, nil)
	ann := testutil.CreateUser(t, suite.db, "ann")

	favorite, err := suite.resources.Favorites.Create(suite.ctx, ann.ID, body(`{}`))
	suite.Require().NoError(err)
	_, err = suite.resources.FavoriteMovies.Create(suite.ctx, ann.ID,
		body(`{"favorite":`+itoa(favorite.ID)+`,"movie":`+itoa(movie.ID)+`}`))
	suite.Require().NoError(err)

	suite.Require().NoError(suite.resources.Favorites.Delete(suite.ctx, ann.ID, favorite.ID))

	var count int64
	suite.Require().NoError(suite.db.Model(&models.FavoriteMovie{}).Count(&count).Error)
	suite.Zero(count)

	_, err = suite.resources.Favorites.Create(suite.ctx, ann.ID, body(`{}`))
	suite.Require().NoError(err)
	items, total, err := suite.resources.FavoriteMovies.List(suite.ctx, ann.ID, pagination.Request{Page: 1, Size: 10})
	suite.Require().NoError(err)
	suite.Zero(total)
	suite.Empty(items)
}

func (suite *ServicesTestSuite) TestHistory_DefaultsViewedAt() {
	t := suite.T()
	movie := testutil.CreateMovie(t, suite.db, "Up", 2009, nil, nil)
	ann := testutil.CreateUser(t, suite.db, "ann")
	bob := testutil.CreateUser(t, suite.db, "bob")

	entry, err := suite.resources.History.Create(suite.ctx, ann.ID, body(`{"movie":`+itoa(movie.ID)+`}`))
	suite.Require().NoError(err)
	suite.False(entry.ViewedAt.IsZero())

	_, err = suite.resources.History.Update(suite.ctx, bob.ID, entry.ID, true, body(`{}`))
	suite.True(apperror.IsNotFound(err))
}

func itoa(id uint) string {
	b, _ := json.Marshal(id)
	return string(b)
}
