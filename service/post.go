package service

import (
	"context"

	"devconnect/apperror"
	"devconnect/auth"
	"devconnect/models"
	"devconnect/validation"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var (
	errNoPosts         = apperror.NotFound("nopost", "There are no posts yet")
	errPostNotFound    = apperror.NotFound("nopost", "The post you are requesting cannot be found")
	errPostGone        = apperror.NotFound("nopost", "Either the post is deleted or does not exist")
	errLikeNoPost      = apperror.NotFound("nopost", "error liking, the post does not exist")
	errUnlikeNoPost    = apperror.NotFound("nopost", "error unliking, the post does not exist")
	errCommentNoPost   = apperror.NotFound("nopost", "error on commenting, the post does not exist")
	errNotLiked        = apperror.NotFound("nolike", "You have not yet liked the post")
	errAlreadyLiked    = apperror.Conflict("alreadyliked", "You have already liked")
	errProfileRequired = apperror.NotFound("noprofile", "Set your profile to proceed in this app")
)

type PostService struct {
	deps Deps
}

// author fills name and avatar from the token when the client left them out.
// req must already be trimmed.
func author(id *auth.Identity, req models.TextRequest) (name, avatar string) {
	name, avatar = req.Name, req.Avatar
	if name == "" {
		name = id.Name
	}
	if avatar == "" {
		avatar = id.Avatar
	}
	return name, avatar
}

func (s *PostService) Create(ctx context.Context, id *auth.Identity, req models.TextRequest) (*models.Post, error) {
	req = req.Trimmed()
	if errs, ok := validation.Text(req); !ok {
		return nil, apperror.Validation(errs)
	}
	userID, err := identityID(id)
	if err != nil {
		return nil, err
	}

	name, avatar := author(id, req)
	post := &models.Post{
		User:      userID,
		Text:      req.Text,
		Name:      name,
		Avatar:    avatar,
		CreatedAt: s.deps.Now().UTC(),
	}
	if err := s.deps.Store.Posts.Create(ctx, post); err != nil {
		return nil, storeErr("create post", err, nil, nil)
	}
	return post, nil
}

// All lists posts newest first with their authors populated.
func (s *PostService) All(ctx context.Context) ([]models.PostView, error) {
	posts, err := s.deps.Store.Posts.FindAll(ctx)
	if err != nil {
		return nil, storeErr("find posts", err, nil, nil)
	}
	if len(posts) == 0 {
		return nil, errNoPosts
	}

	ids := make([]primitive.ObjectID, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.User)
	}
	byID, err := s.deps.summaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]models.PostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, models.PostView{Post: p, User: summaryOr(byID, p.User)})
	}
	return views, nil
}

func (s *PostService) Get(ctx context.Context, postHex string) (*models.Post, error) {
	postID, err := parseID(postHex, errPostNotFound)
	if err != nil {
		return nil, err
	}
	post, err := s.deps.Store.Posts.FindByID(ctx, postID)
	if err != nil {
		return nil, storeErr("find post", err, errPostNotFound, nil)
	}
	return post, nil
}

// requireProfile gates post mutations on the requester having a profile.
func (s *PostService) requireProfile(ctx context.Context, id *auth.Identity) (primitive.ObjectID, error) {
	userID, err := identityID(id)
	if err != nil {
		return userID, err
	}
	if _, err := s.deps.Store.Profiles.FindByUser(ctx, userID); err != nil {
		return userID, storeErr("find profile", err, errProfileRequired, nil)
	}
	return userID, nil
}

// mutate is the load, change, save cycle shared by likes and comments. When
// change returns a nil error and false the post is returned unsaved.
func (s *PostService) mutate(ctx context.Context, id *auth.Identity, postHex string, missing *apperror.Error, change func(post *models.Post, userID primitive.ObjectID) (bool, error)) (*models.Post, bool, error) {
	userID, err := s.requireProfile(ctx, id)
	if err != nil {
		return nil, false, err
	}
	postID, err := parseID(postHex, missing)
	if err != nil {
		return nil, false, err
	}

	var (
		post    *models.Post
		changed bool
	)
	err = s.deps.locked(ctx, "post:"+postID.Hex(), func() error {
		loaded, err := s.deps.Store.Posts.FindByID(ctx, postID)
		if err != nil {
			return storeErr("find post", err, missing, nil)
		}
		post = loaded
		if changed, err = change(post, userID); err != nil || !changed {
			return err
		}
		return storeErrOrNil("save post", s.deps.Store.Posts.Save(ctx, post), missing)
	})
	if err != nil {
		return nil, false, err
	}
	return post, changed, nil
}

func (s *PostService) Delete(ctx context.Context, id *auth.Identity, postHex string) error {
	if _, err := s.requireProfile(ctx, id); err != nil {
		return err
	}
	postID, err := parseID(postHex, errPostGone)
	if err != nil {
		return err
	}

	return s.deps.locked(ctx, "post:"+postID.Hex(), func() error {
		post, err := s.deps.Store.Posts.FindByID(ctx, postID)
		if err != nil {
			return storeErr("find post", err, errPostGone, nil)
		}
		if err := assertOwner(post.User, id); err != nil {
			s.deps.Log.Warn("post delete refused", zap.String("postId", postHex), zap.String("userId", id.ID))
			return err
		}
		return storeErrOrNil("delete post", s.deps.Store.Posts.Delete(ctx, postID), errPostGone)
	})
}

// Like adds the requester's like. A user likes a post at most once.
func (s *PostService) Like(ctx context.Context, id *auth.Identity, postHex string) (*models.Post, error) {
	post, _, err := s.mutate(ctx, id, postHex, errLikeNoPost, func(p *models.Post, userID primitive.ObjectID) (bool, error) {
		if indexOf(p.Likes, func(l models.Like) bool { return l.User == userID }) >= 0 {
			return false, errAlreadyLiked
		}
		p.Likes = prepend(p.Likes, models.Like{ID: primitive.NewObjectID(), User: userID})
		return true, nil
	})
	return post, err
}

func (s *PostService) Unlike(ctx context.Context, id *auth.Identity, postHex string) (*models.Post, error) {
	post, _, err := s.mutate(ctx, id, postHex, errUnlikeNoPost, func(p *models.Post, userID primitive.ObjectID) (bool, error) {
		i := indexOf(p.Likes, func(l models.Like) bool { return l.User == userID })
		if i < 0 {
			return false, errNotLiked
		}
		p.Likes = removeAt(p.Likes, i)
		return true, nil
	})
	return post, err
}

func (s *PostService) Comment(ctx context.Context, id *auth.Identity, postHex string, req models.TextRequest) (*models.Post, error) {
	req = req.Trimmed()
	if errs, ok := validation.Text(req); !ok {
		return nil, apperror.Validation(errs)
	}
	post, _, err := s.mutate(ctx, id, postHex, errCommentNoPost, func(p *models.Post, userID primitive.ObjectID) (bool, error) {
		name, avatar := author(id, req)
		p.Comments = prepend(p.Comments, models.Comment{
			ID:     primitive.NewObjectID(),
			User:   userID,
			Text:   req.Text,
			Name:   name,
			Avatar: avatar,
			Date:   s.deps.Now().UTC(),
		})
		return true, nil
	})
	return post, err
}

// DeleteComment removes a comment written by the requester or left on the
// requester's post. removed is false when no comment has that id.
func (s *PostService) DeleteComment(ctx context.Context, id *auth.Identity, postHex, commentHex string) (post *models.Post, removed bool, err error) {
	return s.mutate(ctx, id, postHex, errPostGone, func(p *models.Post, userID primitive.ObjectID) (bool, error) {
		i := indexOf(p.Comments, func(c models.Comment) bool { return c.ID.Hex() == commentHex })
		if i < 0 {
			return false, nil
		}
		if assertOwner(p.Comments[i].User, id) != nil && assertOwner(p.User, id) != nil {
			return false, errNotAuthorized
		}
		p.Comments = removeAt(p.Comments, i)
		return true, nil
	})
}
