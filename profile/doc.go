// Package profile writes pprof profiles of an idldoc run.
//
// CPU profiling covers everything between [Profiler.Start] and
// [Profiler.Stop]; heap, goroutine, block and mutex profiles are snapshots
// taken at Stop. Block and mutex sampling is only switched on when the
// matching profile was requested, so a run without profile flags leaves the
// runtime untouched.
//
//	cfg := profile.NewConfig()
//	p := cfg.NewProfiler()
//
//	rootCmd := &cobra.Command{
//	    PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
//	        return p.Start()
//	    },
//	}
//
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//	err := rootCmd.Execute()
//	err = errors.Join(err, p.Stop())
package profile
