package converter

import (
	"github.com/samber/lo"

	"github.com/simoilconte/Bensine/internal/model"
	apiv1 "github.com/simoilconte/Bensine/pkg/api/v1"
)

func SessionToAPI(s *model.Session) apiv1.Session {
	return apiv1.Session{
		Token:     s.Token,
		UserID:    s.UserID,
		ExpiresAt: s.ExpiresAt,
	}
}

func SignUpRequestToParams(req apiv1.SignUpRequest) model.SignUpParams {
	p := model.SignUpParams{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	}
	if req.Role != nil {
		p.Role = lo.ToPtr(model.Role(*req.Role))
	}
	return p
}

func UserToAPI(u *model.User) apiv1.User {
	return apiv1.User{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Role:       string(u.Role),
		CustomerID: u.CustomerID,
		CreatedAt:  u.CreatedAt,
	}
}

func UserViewsToAPI(list []model.UserView) []apiv1.User {
	return lo.Map(list, func(v model.UserView, _ int) apiv1.User {
		out := UserToAPI(&v.User)
		out.CustomerName = v.CustomerName
		return out
	})
}
