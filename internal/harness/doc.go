// Package harness runs allocation scenarios as executable checks.
//
// A scenario names a record file, a date and the allocation parameters, and
// states what the resulting day must look like.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: new_year
//	description: "Meeting plus one relative task on New Year's day"
//	records: ../records/workday.yaml   # relative to the scenario file
//	date: "2023-01-01"
//	hours: 8.0                         # optional, default 8.0
//	resolution: 0.25                   # optional, default 0.25
//	seed: 7                            # optional, default 1
//	reverse_pairing: false             # optional
//	expect:
//	  total_effort: 8.0
//	  activity_count: 2
//	  activities:
//	    - account: "Team meetings"
//	      absolute_effort: 1.0
//
// An expectation may instead name an allocation error:
//
//	expect:
//	  error: "invalid resolution"
//
// # Deterministic Testing
//
// Every scenario runs with a PCG generator seeded from the scenario, so the
// same scenario always produces the same day. This is what makes golden file
// comparison of the rendered JSON report possible.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/new_year.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, e := range result.Errors {
//	        log.Println(e)
//	    }
//	}
package harness
