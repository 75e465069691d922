package builders

import "github.com/skelly-dev/projscout/internal/project"

// NewDefaultRegistry creates a registry with a strategy for every project type.
func NewDefaultRegistry(env Env, classifier *project.Classifier) *project.Registry {
	env = env.withDefaults()
	if classifier == nil {
		classifier = project.NewClassifier(env.Prober, nil)
	}
	r := project.NewRegistry(classifier, env.Logger)

	r.Register(project.TypeBazel, NewBazelBuilder(env))
	r.Register(project.TypeCMake, newBaselineOnly(env))
	r.Register(project.TypeRust, NewRustBuilder(env))
	r.Register(project.TypeZig, NewZigBuilder(env))
	r.Register(project.TypeGodot, NewGodotBuilder(env))
	r.Register(project.TypeUnity, NewUnityBuilder(env))
	r.Register(project.TypeUnreal, NewUnrealBuilder(env))
	r.Register(project.TypeNeovim, newBaselineOnly(env))
	r.Register(project.TypeGit, newBaselineOnly(env))

	return r
}
