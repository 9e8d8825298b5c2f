package parser

// sampleTranscript mimics the linear text a PDF text layer yields for a
// two-term transcript with withdrawn, pass/fail, and in-progress rows.
const sampleTranscript = `Florida Institute of Technology
Official Transcript

901234567  Doe, Jane A.
Name : Jane Doe
Program: Computer Science
College: College of Engineering and Science
Major and Department: Computer Science,
Computer Engineering and Sciences

INSTITUTION CREDIT

Term: Fall 2023
Academic Standing: Good Standing
Subject Course Level Title Grade Credit Hours Quality Points
CSE 1001 01 Intro to CS A 3.0 12.0
MTH 1001 01 Calculus 1 B+ 4.0 13.2
COM 1101 01 Composition and Rhetoric A- 3.0 11.1
Current Term: 10.00 10.00 10.00 10.00 36.30 3.63
Cumulative: 10.00 10.00 10.00 10.00 36.30 3.63

Term: Spring 2024
Academic Standing: Dean's List
CSE 1002 01 Fundamentals of Software
Development B 3.0 9.0
MTH 2001 01 Calculus 2 W 4.0
PSY 1411 01 Intro to Psychology P 3.0
Current Term: 10.00 6.00 6.00 3.00 9.00 3.00
Cumulative: 20.00 16.00 16.00 13.00 45.30 3.48

Term: TRANSCRIPT TOTALS

Total Institution: 20.00 16.00 16.00 13.00 45.30 3.48

COURSES IN PROGRESS

Term: Fall 2024
CSE 2010 01 Algorithms and Data Structures 4.0
CSE 2120 01 Computer Organization 3.0
`

// completedOnlyTranscript has no in-progress block at all.
const completedOnlyTranscript = `Name : John Roe
Program: Aerospace Engineering

Term: Fall 2023
MAE 1201 01 Intro to Aerospace A 3.0 12.0
Current Term: 3.00 3.00 3.00 3.00 12.00 4.00
Cumulative: 3.00 3.00 3.00 3.00 12.00 4.00
`
