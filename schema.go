package main

import (
	"github.com/graphql-go/graphql"

	"github.com/FahriNazarudin/Frog/models"
)

// buildSchema wires the GraphQL surface to the resolver methods. Field
// names and shapes follow the mobile client's queries; ids and dates
// get explicit resolvers, everything else rides on the json tags.
func (s *Server) buildSchema() (graphql.Schema, error) {
	commentType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Comment",
		Fields: graphql.Fields{
			"content":   &graphql.Field{Type: graphql.String},
			"username":  &graphql.Field{Type: graphql.String},
			"createdAt": &graphql.Field{Type: graphql.DateTime},
			"updatedAt": &graphql.Field{Type: graphql.DateTime},
		},
	})

	likeType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Like",
		Fields: graphql.Fields{
			"username":  &graphql.Field{Type: graphql.String},
			"createdAt": &graphql.Field{Type: graphql.DateTime},
			"updatedAt": &graphql.Field{Type: graphql.DateTime},
		},
	})

	authorDetailType := graphql.NewObject(graphql.ObjectConfig{
		Name: "AuthorDetail",
		Fields: graphql.Fields{
			"_id": &graphql.Field{
				Type: graphql.ID,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if a, ok := p.Source.(*models.AuthorDetail); ok && a != nil {
						return a.ID.Hex(), nil
					}
					return nil, nil
				},
			},
			"name":     &graphql.Field{Type: graphql.String},
			"username": &graphql.Field{Type: graphql.String},
			"email":    &graphql.Field{Type: graphql.String},
		},
	})

	postType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Post",
		Fields: graphql.Fields{
			"_id": &graphql.Field{
				Type: graphql.ID,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if post, ok := p.Source.(models.Post); ok {
						return post.ID.Hex(), nil
					}
					return nil, nil
				},
			},
			"content": &graphql.Field{Type: graphql.String},
			"tag":     &graphql.Field{Type: graphql.String},
			"imgUrl":  &graphql.Field{Type: graphql.String},
			"authorId": &graphql.Field{
				Type: graphql.ID,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if post, ok := p.Source.(models.Post); ok {
						return post.AuthorID.Hex(), nil
					}
					return nil, nil
				},
			},
			"comments":     &graphql.Field{Type: graphql.NewList(commentType)},
			"likes":        &graphql.Field{Type: graphql.NewList(likeType)},
			"createdAt":    &graphql.Field{Type: graphql.DateTime},
			"updatedAt":    &graphql.Field{Type: graphql.DateTime},
			"authorDetail": &graphql.Field{Type: authorDetailType},
		},
	})

	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"_id": &graphql.Field{
				Type: graphql.ID,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if user, ok := p.Source.(models.User); ok {
						return user.ID.Hex(), nil
					}
					return nil, nil
				},
			},
			"name":     &graphql.Field{Type: graphql.String},
			"username": &graphql.Field{Type: graphql.String},
			"email":    &graphql.Field{Type: graphql.String},
		},
	})

	followDetailType := graphql.NewObject(graphql.ObjectConfig{
		Name: "FollowDetail",
		Fields: graphql.Fields{
			"_id": &graphql.Field{
				Type: graphql.ID,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if d, ok := p.Source.(models.FollowDetail); ok {
						return d.ID.Hex(), nil
					}
					return nil, nil
				},
			},
			"name":      &graphql.Field{Type: graphql.String},
			"username":  &graphql.Field{Type: graphql.String},
			"email":     &graphql.Field{Type: graphql.String},
			"createdAt": &graphql.Field{Type: graphql.DateTime},
		},
	})

	profileType := graphql.NewObject(graphql.ObjectConfig{
		Name: "UserProfile",
		Fields: graphql.Fields{
			"user": &graphql.Field{
				Type: userType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if profile, ok := p.Source.(models.UserProfile); ok {
						return profile.User, nil
					}
					return nil, nil
				},
			},
			"followers": &graphql.Field{
				Type: graphql.NewList(followDetailType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if profile, ok := p.Source.(models.UserProfile); ok {
						return profile.Followers, nil
					}
					return nil, nil
				},
			},
			"following": &graphql.Field{
				Type: graphql.NewList(followDetailType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if profile, ok := p.Source.(models.UserProfile); ok {
						return profile.Following, nil
					}
					return nil, nil
				},
			},
		},
	})

	loginResponseType := graphql.NewObject(graphql.ObjectConfig{
		Name: "LoginResponse",
		Fields: graphql.Fields{
			"access_token": &graphql.Field{Type: graphql.String},
		},
	})

	idArg := graphql.FieldConfigArgument{
		"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
	}
	postIdArg := graphql.FieldConfigArgument{
		"postId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
	}
	userIdArg := graphql.FieldConfigArgument{
		"userId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
	}

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"getPosts": &graphql.Field{
				Type:    graphql.NewList(postType),
				Resolve: s.getPosts,
			},
			"getPostById": &graphql.Field{
				Type:    postType,
				Args:    idArg,
				Resolve: s.getPostById,
			},
			"getPostByContent": &graphql.Field{
				Type: graphql.NewList(postType),
				Args: graphql.FieldConfigArgument{
					"content": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: s.getPostByContent,
			},
			"getUsers": &graphql.Field{
				Type:    graphql.NewList(userType),
				Resolve: s.getUsers,
			},
			"getAllUsers": &graphql.Field{
				Type:    graphql.NewList(userType),
				Resolve: s.getAllUsers,
			},
			"getUserById": &graphql.Field{
				Type:    userType,
				Args:    idArg,
				Resolve: s.getUserById,
			},
			"getUserByUsername": &graphql.Field{
				Type: graphql.NewList(userType),
				Args: graphql.FieldConfigArgument{
					"username": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: s.getUserByUsername,
			},
			"getUserProfile": &graphql.Field{
				Type:    profileType,
				Args:    idArg,
				Resolve: s.getUserProfile,
			},
			"getMyFollowers": &graphql.Field{
				Type:    graphql.NewList(followDetailType),
				Resolve: s.getMyFollowers,
			},
			"getMyFollowing": &graphql.Field{
				Type:    graphql.NewList(followDetailType),
				Resolve: s.getMyFollowing,
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"register": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"name":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"username": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: s.register,
			},
			"login": &graphql.Field{
				Type: loginResponseType,
				Args: graphql.FieldConfigArgument{
					"username": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: s.login,
			},
			"addPost": &graphql.Field{
				Type: postType,
				Args: graphql.FieldConfigArgument{
					"content": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"tag":     &graphql.ArgumentConfig{Type: graphql.String},
					"imgUrl":  &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: s.addPost,
			},
			"addComment": &graphql.Field{
				Type: graphql.String,
				Args: graphql.FieldConfigArgument{
					"postId":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"content": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: s.addComment,
			},
			"addLike": &graphql.Field{
				Type:    graphql.String,
				Args:    postIdArg,
				Resolve: s.addLike,
			},
			"removeLike": &graphql.Field{
				Type:    graphql.String,
				Args:    postIdArg,
				Resolve: s.removeLike,
			},
			"followUser": &graphql.Field{
				Type:    graphql.String,
				Args:    userIdArg,
				Resolve: s.followUser,
			},
			"unfollowUser": &graphql.Field{
				Type:    graphql.String,
				Args:    userIdArg,
				Resolve: s.unfollowUser,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}
